package entity

const (
	PieceX     Piece = "X"
	PieceO     Piece = "O"
	PieceEmpty Piece = ""
)

// Piece is a single mark on the board.
type Piece string

// Opponent - returns the mark played by the other side.
func (that Piece) Opponent() Piece {
	if that == PieceX {
		return PieceO
	}

	return PieceX
}

// IsEmpty - reports whether the mark is the empty cell value.
func (that Piece) IsEmpty() bool {
	return that == PieceEmpty
}
