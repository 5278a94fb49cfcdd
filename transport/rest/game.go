package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

type matchService interface {
	Start(ctx context.Context, roomID string, players []string) (entity.MatchState, error)
	State(ctx context.Context, roomID string) (entity.MatchState, error)
}

type GameHandler struct {
	matchService matchService
}

type startGameRequest struct {
	RoomID  string   `json:"roomId"`
	Players []string `json:"players"`
}

type startGameResponse struct {
	MatchID string    `json:"matchId"`
	RoomID  string    `json:"roomId"`
	Players [2]string `json:"players"`
	Status  string    `json:"status"`
}

func NewGameHandler(matchService matchService) *GameHandler {
	return &GameHandler{matchService: matchService}
}

// Register - mounts the engine routes. The websocket route is mounted by the caller.
func (that *GameHandler) Register(e *echo.Echo) {
	e.POST("/game/start", that.Start)
	e.GET("/game/state/:roomId", that.State)
}

func (that *GameHandler) Start(c echo.Context) error {
	var req startGameRequest
	if err := bind(c, &req); err != nil {
		return sendError(c, err)
	}

	state, err := that.matchService.Start(c.Request().Context(), req.RoomID, req.Players)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, startGameResponse{
		MatchID: state.MatchID,
		RoomID:  state.RoomID,
		Players: state.Players,
		Status:  entity.MatchStatusStarted,
	})
}

func (that *GameHandler) State(c echo.Context) error {
	state, err := that.matchService.State(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, state)
}
