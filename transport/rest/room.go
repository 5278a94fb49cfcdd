package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

type roomService interface {
	Create(ctx context.Context, username string) (entity.Room, error)
	Join(ctx context.Context, roomID, username string) (entity.Room, error)
	Get(ctx context.Context, roomID string) (entity.Room, error)
}

type RoomHandler struct {
	logger      *slog.Logger
	roomService roomService
}

type createRoomRequest struct {
	Username string `json:"username"`
}

type joinRoomRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type roomResponse struct {
	RoomID  string            `json:"roomId"`
	Players []string          `json:"players"`
	Status  entity.RoomStatus `json:"status"`
	MatchID *string           `json:"matchId"`
}

func NewRoomHandler(logger *slog.Logger, roomService roomService) *RoomHandler {
	return &RoomHandler{
		logger:      logger.With("component", "room_handler"),
		roomService: roomService,
	}
}

// Register - mounts the broker routes.
func (that *RoomHandler) Register(e *echo.Echo) {
	e.POST("/rooms/create", that.Create)
	e.POST("/rooms/join", that.Join)
	e.GET("/rooms/:roomId", that.Get)
}

func (that *RoomHandler) Create(c echo.Context) error {
	var req createRoomRequest
	if err := bind(c, &req); err != nil {
		return sendError(c, err)
	}

	room, err := that.roomService.Create(c.Request().Context(), req.Username)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, newRoomResponse(room))
}

func (that *RoomHandler) Join(c echo.Context) error {
	var req joinRoomRequest
	if err := bind(c, &req); err != nil {
		return sendError(c, err)
	}

	room, err := that.roomService.Join(c.Request().Context(), req.RoomID, req.Username)
	if err != nil {
		that.logger.Debug("join rejected", "roomID", req.RoomID, "username", req.Username, "error", err)
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, newRoomResponse(room))
}

func (that *RoomHandler) Get(c echo.Context) error {
	room, err := that.roomService.Get(c.Request().Context(), c.Param("roomId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, newRoomResponse(room))
}

func newRoomResponse(room entity.Room) roomResponse {
	resp := roomResponse{
		RoomID:  room.ID,
		Players: room.Players,
		Status:  room.Status,
	}

	if room.MatchID != "" {
		matchID := room.MatchID
		resp.MatchID = &matchID
	}

	return resp
}
