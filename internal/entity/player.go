package entity

// Player - is the ledger record of a username.
type Player struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// MatchResult - is what the engine reports to the ledger when a round ends.
// A nil Winner means a draw.
type MatchResult struct {
	Player1 string  `json:"player1"`
	Player2 string  `json:"player2"`
	Winner  *string `json:"winner"`
}

func (that MatchResult) IsDraw() bool {
	return that.Winner == nil
}
