package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const (
	roomPrefix  = "ROOM_"
	matchPrefix = "MATCH_"

	roomIDLength  = 6
	matchIDLength = 8
)

// NewRoomID - generates a room identifier like ROOM_1a2b3c.
func NewRoomID() string {
	return roomPrefix + randomHex(roomIDLength)
}

// NewMatchID - generates a match identifier like MATCH_1a2b3c4d.
func NewMatchID() string {
	return matchPrefix + randomHex(matchIDLength)
}

// NewConnectionID - generates an identifier for a live socket.
func NewConnectionID() string {
	return uuid.NewString()
}

func randomHex(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
