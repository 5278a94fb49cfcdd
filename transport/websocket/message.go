package websocket

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

const (
	CommandJoinRoom = "JOIN_ROOM"
	CommandMakeMove = "MAKE_MOVE"

	invalidCell = -1
)

// Command - is a message sent by a client.
type Command struct {
	Command  string          `json:"command"`
	RoomID   string          `json:"roomId"`
	Username string          `json:"username"`
	Cell     json.RawMessage `json:"cell,omitempty"`
}

// ParseCell - reads the cell of a MAKE_MOVE command. Integers and integral numeric strings
// are accepted. Anything else is returned as an out of range cell so the engine rejects it
// after its seat and turn checks.
func ParseCell(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, apperror.ErrCellRequired
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return invalidCell, nil
	}

	switch v := value.(type) {
	case float64:
		return integral(v), nil
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return invalidCell, nil
		}
		return integral(number), nil
	default:
		return invalidCell, nil
	}
}

func integral(v float64) int {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return invalidCell
	}

	return int(v)
}
