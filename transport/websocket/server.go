package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
	"github.com/rocketscienceinc/tictactoe-match/internal/hub"
)

type matchEngine interface {
	JoinSocket(ctx context.Context, conn hub.Connection, roomID, username string) error
	MakeMove(ctx context.Context, roomID, username string, cell int) error
	Disconnect(ctx context.Context, conn hub.Connection)
}

type handlerFunc func(ctx context.Context, conn *Connection, command *Command) error

type Server struct {
	logger   *slog.Logger
	engine   matchEngine
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, engine matchEngine) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		engine: engine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[CommandJoinRoom] = server.handleJoinRoom
	server.handlers[CommandMakeMove] = server.handleMakeMove

	return server
}

// Handle - upgrades the request and serves the socket until it goes away.
func (that *Server) Handle(c echo.Context) error {
	log := that.logger.With("method", "Handle")

	ws, err := that.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return nil
	}

	conn := newConnection(that.logger, ws)
	log.Info("websocket connection established", "connectionID", conn.ID())

	go conn.writePump()

	ctx := c.Request().Context()
	conn.readPump(func(data []byte) {
		that.dispatch(ctx, conn, data)
	})

	that.engine.Disconnect(context.WithoutCancel(ctx), conn)
	_ = conn.Close()

	log.Info("websocket connection closed", "connectionID", conn.ID())

	return nil
}

// dispatch - routes one frame. Every failure is answered to this socket only.
func (that *Server) dispatch(ctx context.Context, conn *Connection, data []byte) {
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	var command Command
	if err := json.Unmarshal(data, &command); err != nil {
		that.sendErrorResponse(conn, apperror.ErrInvalidJSON)
		return
	}

	handler, ok := that.handlers[command.Command]
	if !ok {
		that.sendErrorResponse(conn, apperror.ErrUnknownCommand)
		return
	}

	if err := handler(ctx, conn, &command); err != nil {
		that.logger.Debug("command rejected", "command", command.Command, "connectionID", conn.ID(), "error", err)
		that.sendErrorResponse(conn, err)
	}
}

func (that *Server) sendErrorResponse(conn *Connection, err error) {
	if sendErr := hub.Send(conn, entity.NewErrorEvent(apperror.Message(err))); sendErr != nil {
		that.logger.Debug("failed to send error response", "connectionID", conn.ID(), "error", sendErr)
	}
}
