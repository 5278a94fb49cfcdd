package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

var errMissingMatchID = errors.New("matchId is missing")

// GameClient - talks to the match engine.
type GameClient struct {
	base
}

type startRequest struct {
	RoomID  string    `json:"roomId"`
	Players [2]string `json:"players"`
}

type startResponse struct {
	MatchID string `json:"matchId"`
}

func NewGameClient(baseURL string, httpClient *http.Client) *GameClient {
	return &GameClient{base: newBase(baseURL, httpClient)}
}

// StartMatch - asks the engine to start a match for a full room and returns its id.
func (that *GameClient) StartMatch(ctx context.Context, roomID string, players [2]string) (string, error) {
	var resp startResponse
	if err := that.do(ctx, http.MethodPost, "/game/start", startRequest{RoomID: roomID, Players: players}, &resp); err != nil {
		return "", err
	}

	if resp.MatchID == "" {
		return "", apperror.Wrap(apperror.ErrDependency, "invalid response from /game/start", errMissingMatchID)
	}

	return resp.MatchID, nil
}
