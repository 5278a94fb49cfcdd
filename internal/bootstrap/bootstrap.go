package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-match/internal/client"
)

const (
	healthTries = 20
	healthDelay = 250 * time.Millisecond
	callTimeout = 5 * time.Second
)

type Options struct {
	UserServiceURL string
	RoomServiceURL string
	WebSocketURL   string
	Player1        string
	Player2        string
}

// Bootstrap - prepares a ready-to-play room: registers two players, seats them and prints
// the commands to type on the websocket.
type Bootstrap struct {
	logger     *slog.Logger
	out        io.Writer
	httpClient *http.Client
	delay      time.Duration
}

func New(logger *slog.Logger, out io.Writer) *Bootstrap {
	return &Bootstrap{
		logger:     logger.With("component", "bootstrap"),
		out:        out,
		httpClient: &http.Client{Timeout: callTimeout},
		delay:      healthDelay,
	}
}

func (that *Bootstrap) Run(ctx context.Context, opts Options) error {
	for _, target := range []struct{ name, url string }{
		{name: "user-service", url: opts.UserServiceURL},
		{name: "room-service", url: opts.RoomServiceURL},
	} {
		if err := that.waitHealthy(ctx, target.url); err != nil {
			return fmt.Errorf("%s not reachable at %s: %w", target.name, target.url, err)
		}
	}

	users := client.NewUserClient(opts.UserServiceURL, that.httpClient)
	for _, username := range []string{opts.Player1, opts.Player2} {
		resp, err := users.Register(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", username, err)
		}
		that.printf("[OK ] registered: %s -> %s\n", username, resp.Message)
	}

	rooms := client.NewRoomClient(opts.RoomServiceURL, that.httpClient)

	room, err := rooms.Create(ctx, opts.Player1)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	that.printf("[OK ] room created by %s: %s\n", opts.Player1, room.RoomID)

	joined, err := rooms.Join(ctx, room.RoomID, opts.Player2)
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	matchID := "null"
	if joined.MatchID != nil {
		matchID = *joined.MatchID
	}
	that.printf("[OK ] %s joined room: %s | status=%s | matchId=%s\n", opts.Player2, joined.RoomID, joined.Status, matchID)

	that.printInstructions(opts, room.RoomID)

	return nil
}

func (that *Bootstrap) waitHealthy(ctx context.Context, baseURL string) error {
	var err error
	for range healthTries {
		if err = client.Health(ctx, that.httpClient, baseURL); err == nil {
			return nil
		}

		that.logger.Debug("service not ready", "url", baseURL, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(that.delay):
		}
	}

	return err
}

func (that *Bootstrap) printInstructions(opts Options, roomID string) {
	that.printf("\n--- Ready to play ---\n")
	that.printf("Open two terminals and run:\n")
	for _, username := range []string{opts.Player1, opts.Player2} {
		that.printf("  go run ./cmd/client -room %s -user %s\n", roomID, username)
	}
	that.printf("\nOr connect any websocket client to %s and send:\n", opts.WebSocketURL)
	for _, username := range []string{opts.Player1, opts.Player2} {
		that.printf("  {\"command\":\"JOIN_ROOM\",\"roomId\":\"%s\",\"username\":\"%s\"}\n", roomID, username)
	}
	that.printf("\nThen make moves (cell 0-8):\n")
	that.printf("  {\"command\":\"MAKE_MOVE\",\"roomId\":\"%s\",\"username\":\"%s\",\"cell\":0}\n", roomID, opts.Player1)
}

func (that *Bootstrap) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}
