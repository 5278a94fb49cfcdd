package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-match/internal/bootstrap"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/pkg/logger"
)

// usage: bootstrap [player1] [player2]
func main() {
	flag.Parse()

	conf, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERR]", err)
		os.Exit(1)
	}

	player1, player2 := "emil", "sara"
	if flag.NArg() >= 2 {
		player1, player2 = flag.Arg(0), flag.Arg(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = bootstrap.New(logger.NewWithWriter(os.Stderr, conf.LogLevel), os.Stdout).Run(ctx, bootstrap.Options{
		UserServiceURL: conf.UserService.URL,
		RoomServiceURL: conf.RoomService.URL,
		WebSocketURL:   conf.GameService.WebSocketURL,
		Player1:        player1,
		Player2:        player2,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERR]", err)
		os.Exit(1)
	}
}
