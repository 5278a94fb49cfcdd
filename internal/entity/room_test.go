package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom(t *testing.T) {
	t.Run("New room waits with its owner seated", func(t *testing.T) {
		room := NewRoom("ROOM_abc123", "emil")

		assert.Equal(t, RoomStatusWaiting, room.Status)
		assert.Equal(t, []string{"emil"}, room.Players)
		assert.Empty(t, room.MatchID)
		assert.True(t, room.HasPlayer("emil"))
		assert.False(t, room.IsFull())
	})

	t.Run("Activate and MarkError keep match id consistent with status", func(t *testing.T) {
		// Given: a full room
		room := NewRoom("ROOM_abc123", "emil")
		room.Players = append(room.Players, "sara")
		assert.True(t, room.IsFull())

		// When: it is activated
		room.Activate("MATCH_0000abcd")

		// Then: it carries the match id
		assert.Equal(t, RoomStatusActive, room.Status)
		assert.Equal(t, "MATCH_0000abcd", room.MatchID)

		// When: it is marked as failed
		room.MarkError()

		// Then: the match id is cleared
		assert.Equal(t, RoomStatusError, room.Status)
		assert.Empty(t, room.MatchID)
	})

	t.Run("Clone does not share players", func(t *testing.T) {
		room := NewRoom("ROOM_abc123", "emil")

		clone := room.Clone()
		clone.Players[0] = "kate"

		assert.Equal(t, "emil", room.Players[0])
	})
}
