package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

// UserClient - talks to the player ledger.
type UserClient struct {
	base
}

type RegisterResponse struct {
	Message string        `json:"message"`
	Player  entity.Player `json:"user"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

func NewUserClient(baseURL string, httpClient *http.Client) *UserClient {
	return &UserClient{base: newBase(baseURL, httpClient)}
}

func (that *UserClient) ReportResult(ctx context.Context, result entity.MatchResult) error {
	return that.do(ctx, http.MethodPost, "/reportResult", result, nil)
}

func (that *UserClient) Register(ctx context.Context, username string) (RegisterResponse, error) {
	var resp RegisterResponse
	err := that.do(ctx, http.MethodPost, "/register", usernameRequest{Username: username}, &resp)

	return resp, err
}

func (that *UserClient) Get(ctx context.Context, username string) (entity.Player, error) {
	var player entity.Player
	err := that.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &player)

	return player, err
}
