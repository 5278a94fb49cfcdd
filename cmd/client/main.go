package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	wstransport "github.com/rocketscienceinc/tictactoe-match/transport/websocket"
)

const quitKey = "q"

var errNoInput = errors.New("no input")

func main() {
	conf, err := config.LoadEnv()
	if err != nil {
		fail(err)
	}

	url := flag.String("url", conf.GameService.WebSocketURL, "match engine websocket url")
	roomID := flag.String("room", "", "room id")
	username := flag.String("user", "", "username")
	flag.Parse()

	stdin := bufio.NewScanner(os.Stdin)
	if *roomID == "" {
		*roomID = prompt(stdin, "Room ID: ")
	}
	if *username == "" {
		*username = prompt(stdin, "Username: ")
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fail(fmt.Errorf("failed to connect to %s: %w", *url, err))
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fmt.Println("<--", string(data))
		}
	}()

	if err = conn.WriteJSON(wstransport.Command{Command: wstransport.CommandJoinRoom, RoomID: *roomID, Username: *username}); err != nil {
		fail(err)
	}

	fmt.Printf("Joined. Type moves as 0..8. Type '%s' to quit.\n", quitKey)

	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if strings.EqualFold(line, quitKey) {
			break
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("cells are numbers 0..8")
			continue
		}

		err = conn.WriteJSON(wstransport.Command{
			Command:  wstransport.CommandMakeMove,
			RoomID:   *roomID,
			Username: *username,
			Cell:     json.RawMessage(strconv.Itoa(cell)),
		})
		if err != nil {
			fail(err)
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	select {
	case <-done:
	default:
	}
}

func prompt(stdin *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !stdin.Scan() {
		fail(errNoInput)
	}

	return strings.TrimSpace(stdin.Text())
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "[ERR]", err)
	os.Exit(1)
}
