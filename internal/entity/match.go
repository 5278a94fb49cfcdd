package entity

import (
	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

const (
	MatchStatusActive    = "ACTIVE"
	MatchStatusRoundOver = "ROUND_OVER"

	// MatchStatusStarted is only reported by the start endpoint.
	MatchStatusStarted = "STARTED"

	SymbolX   = "X"
	SymbolO   = "O"
	EmptyCell = ""

	// DrawsKey - is the score key that counts draws next to the two usernames.
	DrawsKey = "draws"

	BoardSize = 9
)

type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "WIN"
	ResultDraw Result = "DRAW"
)

// Outcome - is the result of evaluating a board.
type Outcome struct {
	Result Result
	Symbol string
}

// WinCombos - rows, columns and diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Match struct {
	ID      string
	RoomID  string
	Players [2]string
	Board   [BoardSize]string
	Turn    string
	Status  string
	Score   map[string]int
}

// MatchState - is a detached copy of a match, safe to serialize outside the match lock.
type MatchState struct {
	RoomID  string            `json:"roomId"`
	MatchID string            `json:"matchId"`
	Players [2]string         `json:"players"`
	Board   [BoardSize]string `json:"board"`
	Turn    string            `json:"turn"`
	Status  string            `json:"status"`
	Score   map[string]int    `json:"score"`
}

// NewMatch - creates a match with an empty board where players[0] moves first as X.
func NewMatch(id, roomID string, players [2]string) *Match {
	return &Match{
		ID:      id,
		RoomID:  roomID,
		Players: players,
		Board:   [BoardSize]string{},
		Turn:    players[0],
		Status:  MatchStatusActive,
		Score: map[string]int{
			players[0]: 0,
			players[1]: 0,
			DrawsKey:   0,
		},
	}
}

// ValidatePlayers - checks that two usernames can share a score table.
func ValidatePlayers(players []string) error {
	if len(players) != 2 {
		return apperror.ErrInvalidPlayers
	}

	for _, player := range players {
		if player == "" || player == DrawsKey {
			return apperror.ErrInvalidPlayers
		}
	}

	if players[0] == players[1] {
		return apperror.ErrInvalidPlayers
	}

	return nil
}

// CheckOutcome - evaluates all 8 lines of the board.
func CheckOutcome(board [BoardSize]string) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{Result: ResultWin, Symbol: a}
		}
	}

	for _, cell := range board {
		if cell == EmptyCell {
			return Outcome{Result: ResultNone}
		}
	}

	return Outcome{Result: ResultDraw}
}

// SymbolFor - returns the mark of a seated player, or "" when the username is not seated.
func (that *Match) SymbolFor(username string) string {
	switch username {
	case that.Players[0]:
		return SymbolX
	case that.Players[1]:
		return SymbolO
	default:
		return ""
	}
}

// PlayerWith - returns the player who owns the symbol.
func (that *Match) PlayerWith(symbol string) string {
	if symbol == SymbolX {
		return that.Players[0]
	}
	return that.Players[1]
}

// Opponent - returns the other seated player.
func (that *Match) Opponent(username string) string {
	if username == that.Players[0] {
		return that.Players[1]
	}
	return that.Players[0]
}

func (that *Match) IsActive() bool {
	return that.Status == MatchStatusActive
}

// ApplyMove - validates and applies a move, then settles the round if the move ended it.
// A rejected move leaves the match untouched.
func (that *Match) ApplyMove(username string, cell int) (Outcome, error) {
	if !that.IsActive() {
		return Outcome{}, apperror.ErrNoActiveMatch
	}

	symbol := that.SymbolFor(username)
	if symbol == "" {
		return Outcome{}, apperror.ErrNotAPlayer
	}

	if that.Turn != username {
		return Outcome{}, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= BoardSize {
		return Outcome{}, apperror.ErrInvalidCell
	}

	if that.Board[cell] != EmptyCell {
		return Outcome{}, apperror.ErrCellTaken
	}

	that.Board[cell] = symbol

	outcome := CheckOutcome(that.Board)
	switch outcome.Result {
	case ResultWin:
		that.Score[that.PlayerWith(outcome.Symbol)]++
		that.Status = MatchStatusRoundOver
	case ResultDraw:
		that.Score[DrawsKey]++
		that.Status = MatchStatusRoundOver
	default:
		that.Turn = that.Opponent(username)
	}

	return outcome, nil
}

// State - returns a snapshot of the match.
func (that *Match) State() MatchState {
	score := make(map[string]int, len(that.Score))
	for key, value := range that.Score {
		score[key] = value
	}

	return MatchState{
		RoomID:  that.RoomID,
		MatchID: that.ID,
		Players: that.Players,
		Board:   that.Board,
		Turn:    that.Turn,
		Status:  that.Status,
		Score:   score,
	}
}
