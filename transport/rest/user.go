package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/service"
)

type UserHandler struct {
	playerService service.PlayerService
}

type registerRequest struct {
	Username string `json:"username"`
}

type registerResponse struct {
	Message string         `json:"message"`
	User    *entity.Player `json:"user"`
}

type reportResponse struct {
	Status string `json:"status"`
}

func NewUserHandler(playerService service.PlayerService) *UserHandler {
	return &UserHandler{playerService: playerService}
}

// Register - mounts the ledger routes.
func (that *UserHandler) Register(e *echo.Echo) {
	e.POST("/register", that.RegisterUser)
	e.GET("/users/:username", that.Get)
	e.POST("/reportResult", that.ReportResult)
}

func (that *UserHandler) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return sendError(c, err)
	}

	player, created, err := that.playerService.Register(c.Request().Context(), req.Username)
	if err != nil {
		return sendError(c, err)
	}

	message := service.MessageAlreadyRegistered
	if created {
		message = service.MessageRegistered
	}

	return c.JSON(http.StatusOK, registerResponse{Message: message, User: player})
}

func (that *UserHandler) Get(c echo.Context) error {
	player, err := that.playerService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, player)
}

func (that *UserHandler) ReportResult(c echo.Context) error {
	var req entity.MatchResult
	if err := bind(c, &req); err != nil {
		return sendError(c, err)
	}

	status, err := that.playerService.ReportResult(c.Request().Context(), req)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, reportResponse{Status: status})
}
