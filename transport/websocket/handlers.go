package websocket

import (
	"context"
	"strings"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

func (that *Server) handleJoinRoom(ctx context.Context, conn *Connection, command *Command) error {
	return that.engine.JoinSocket(ctx, conn, command.RoomID, command.Username)
}

func (that *Server) handleMakeMove(ctx context.Context, _ *Connection, command *Command) error {
	if strings.TrimSpace(command.RoomID) == "" {
		return apperror.ErrRoomIDRequired
	}

	if strings.TrimSpace(command.Username) == "" {
		return apperror.ErrUsernameRequired
	}

	cell, err := ParseCell(command.Cell)
	if err != nil {
		return err
	}

	return that.engine.MakeMove(ctx, command.RoomID, command.Username, cell)
}
