package entity

import "time"

const (
	StatusAwaitingHuman  = "awaiting_human"
	StatusAwaitingSearch = "awaiting_search"
	StatusEnded          = "ended"
)

const (
	VerdictBotWin = "bot_win"
	VerdictXWin   = "x_win"
	VerdictOWin   = "o_win"
	VerdictDraw   = "draw"
)

// EndMessage - returns the banner text shown for a finished game.
func EndMessage(verdict string) string {
	switch verdict {
	case VerdictBotWin:
		return "Computer won!"
	case VerdictXWin:
		return "Crosses win!"
	case VerdictOWin:
		return "Circles win!"
	case VerdictDraw:
		return "It's a draw :/"
	}

	return ""
}

// MatchSnapshot is a read-only view of the live match for clients to draw.
type MatchSnapshot struct {
	Board        []Piece      `json:"board"`
	Size         int          `json:"size"`
	Placed       int          `json:"placed"`
	Turn         Piece        `json:"turn"`
	Status       string       `json:"status"`
	Verdict      string       `json:"verdict,omitempty"`
	Message      string       `json:"message,omitempty"`
	WinningMove  *WinningMove `json:"winning_move,omitempty"`
	WinningCells []int        `json:"winning_cells,omitempty"`
}

// MatchRecord is a finished match as kept in the archive.
type MatchRecord struct {
	ID         string        `json:"id"`
	Board      []Piece       `json:"board"`
	Size       int           `json:"size"`
	Verdict    string        `json:"verdict"`
	Message    string        `json:"message"`
	Moves      int           `json:"moves"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

// StatsTotals aggregates every finished match by verdict.
type StatsTotals struct {
	BotWins int `json:"bot_wins"`
	XWins   int `json:"x_wins"`
	OWins   int `json:"o_wins"`
	Draws   int `json:"draws"`
	Played  int `json:"played"`
}
