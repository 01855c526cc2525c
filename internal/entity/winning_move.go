package entity

// WinningMove describes the completed run that ended a game. Anchor is the
// run's end cell in Direction; the rest of the run extends the opposite way.
type WinningMove struct {
	Piece     Piece `json:"piece"`
	Anchor    Point `json:"anchor"`
	Direction Point `json:"direction"`
	Length    int   `json:"length"`
}

// Cells - lists the run's cell indexes on a board of the given size,
// starting from the anchor.
func (that WinningMove) Cells(size int) []int {
	cells := make([]int, 0, that.Length)

	step := that.Direction.Negate()
	pos := that.Anchor

	for i := 0; i < that.Length; i++ {
		cells = append(cells, pos.Y*size+pos.X)
		pos = pos.Add(step)
	}

	return cells
}
