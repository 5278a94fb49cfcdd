package entity

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "WAITING"
	RoomStatusActive  RoomStatus = "ACTIVE"
	RoomStatusError   RoomStatus = "ERROR"

	MaxRoomPlayers = 2
)

type Room struct {
	ID      string
	Players []string
	Status  RoomStatus
	MatchID string
}

func NewRoom(id, owner string) *Room {
	return &Room{
		ID:      id,
		Players: []string{owner},
		Status:  RoomStatusWaiting,
	}
}

func (that *Room) HasPlayer(username string) bool {
	for _, player := range that.Players {
		if player == username {
			return true
		}
	}
	return false
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxRoomPlayers
}

// Activate - attaches the match that the engine started for this room.
func (that *Room) Activate(matchID string) {
	that.Status = RoomStatusActive
	that.MatchID = matchID
}

// MarkError - records a failed handoff. The room stays in this state for good.
func (that *Room) MarkError() {
	that.Status = RoomStatusError
	that.MatchID = ""
}

// Clone - returns a copy that does not share the players slice.
func (that *Room) Clone() Room {
	players := make([]string, len(that.Players))
	copy(players, that.Players)

	return Room{
		ID:      that.ID,
		Players: players,
		Status:  that.Status,
		MatchID: that.MatchID,
	}
}
