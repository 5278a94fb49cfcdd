package entity

const (
	EventJoinedRoom   = "JOINED_ROOM"
	EventPlayerJoined = "PLAYER_JOINED"
	EventPlayerLeft   = "PLAYER_LEFT"
	EventBoardUpdate  = "BOARD_UPDATE"
	EventRoundEnd     = "ROUND_END"
	EventError        = "ERROR"
)

type JoinedRoomEvent struct {
	Type       string      `json:"type"`
	RoomID     string      `json:"roomId"`
	You        string      `json:"you"`
	MatchState *MatchState `json:"matchState"`
}

// PlayerEvent - is sent when a socket joins or leaves a room.
type PlayerEvent struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type BoardUpdateEvent struct {
	Type    string            `json:"type"`
	RoomID  string            `json:"roomId"`
	MatchID string            `json:"matchId"`
	Board   [BoardSize]string `json:"board"`
	Turn    string            `json:"turn"`
	Status  string            `json:"status"`
	Score   map[string]int    `json:"score"`
}

type RoundEndEvent struct {
	Type    string            `json:"type"`
	RoomID  string            `json:"roomId"`
	MatchID string            `json:"matchId"`
	Result  Result            `json:"result"`
	Winner  string            `json:"winner,omitempty"`
	Loser   string            `json:"loser,omitempty"`
	Board   [BoardSize]string `json:"board"`
	Score   map[string]int    `json:"score"`
}

type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewJoinedRoomEvent(roomID, username string, state *MatchState) JoinedRoomEvent {
	return JoinedRoomEvent{Type: EventJoinedRoom, RoomID: roomID, You: username, MatchState: state}
}

func NewPlayerJoinedEvent(roomID, username string) PlayerEvent {
	return PlayerEvent{Type: EventPlayerJoined, RoomID: roomID, Username: username}
}

func NewPlayerLeftEvent(roomID, username string) PlayerEvent {
	return PlayerEvent{Type: EventPlayerLeft, RoomID: roomID, Username: username}
}

func NewBoardUpdateEvent(state MatchState) BoardUpdateEvent {
	return BoardUpdateEvent{
		Type:    EventBoardUpdate,
		RoomID:  state.RoomID,
		MatchID: state.MatchID,
		Board:   state.Board,
		Turn:    state.Turn,
		Status:  state.Status,
		Score:   state.Score,
	}
}

// NewRoundEndEvent - builds the settlement event; winner and loser stay empty on a draw.
func NewRoundEndEvent(state MatchState, result Result, winner, loser string) RoundEndEvent {
	return RoundEndEvent{
		Type:    EventRoundEnd,
		RoomID:  state.RoomID,
		MatchID: state.MatchID,
		Result:  result,
		Winner:  winner,
		Loser:   loser,
		Board:   state.Board,
		Score:   state.Score,
	}
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Error: message}
}
