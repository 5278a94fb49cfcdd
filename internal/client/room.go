package client

import (
	"context"
	"net/http"
)

// RoomClient - talks to the room broker.
type RoomClient struct {
	base
}

// RoomResponse - the broker's view of a room.
type RoomResponse struct {
	RoomID  string   `json:"roomId"`
	Players []string `json:"players"`
	Status  string   `json:"status"`
	MatchID *string  `json:"matchId"`
}

type joinRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

func NewRoomClient(baseURL string, httpClient *http.Client) *RoomClient {
	return &RoomClient{base: newBase(baseURL, httpClient)}
}

func (that *RoomClient) Create(ctx context.Context, username string) (RoomResponse, error) {
	var room RoomResponse
	err := that.do(ctx, http.MethodPost, "/rooms/create", usernameRequest{Username: username}, &room)

	return room, err
}

func (that *RoomClient) Join(ctx context.Context, roomID, username string) (RoomResponse, error) {
	var room RoomResponse
	err := that.do(ctx, http.MethodPost, "/rooms/join", joinRequest{RoomID: roomID, Username: username}, &room)

	return room, err
}
