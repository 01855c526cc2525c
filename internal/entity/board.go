package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictacbot-backend/internal/apperror"
)

// Point addresses a board cell. X is the column, Y is the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add - returns the point shifted by other.
func (that Point) Add(other Point) Point {
	return Point{X: that.X + other.X, Y: that.Y + other.Y}
}

// Negate - returns the point mirrored through the origin.
func (that Point) Negate() Point {
	return Point{X: -that.X, Y: -that.Y}
}

// Line directions for win detection, in the order runs are looked for:
// horizontal first, then vertical, then the two diagonals.
var (
	DirHorizontal = Point{X: -1, Y: 0}
	DirVertical   = Point{X: 0, Y: -1}
	DirDiagonal   = Point{X: -1, Y: -1}
	DirAntiDiag   = Point{X: -1, Y: 1}

	Directions = [4]Point{DirHorizontal, DirVertical, DirDiagonal, DirAntiDiag}
)

// Board is a square grid of marks stored row by row.
type Board struct {
	Size   int
	Cells  []Piece
	Placed int
}

// NewBoard - returns an empty size-by-size board.
func NewBoard(size int) *Board {
	return &Board{
		Size:  size,
		Cells: make([]Piece, size*size),
	}
}

// Reset - clears every cell and the placed counter, keeping the size.
func (that *Board) Reset() {
	for i := range that.Cells {
		that.Cells[i] = PieceEmpty
	}

	that.Placed = 0
}

// Index - converts a point to its position in Cells.
func (that *Board) Index(point Point) int {
	return point.Y*that.Size + point.X
}

// PointAt - converts a position in Cells back to a point.
func (that *Board) PointAt(index int) Point {
	return Point{X: index % that.Size, Y: index / that.Size}
}

// InBounds - reports whether the point lies on the board.
func (that *Board) InBounds(point Point) bool {
	return point.X >= 0 && point.X < that.Size && point.Y >= 0 && point.Y < that.Size
}

// At - returns the mark at the point, which must be in bounds.
func (that *Board) At(point Point) Piece {
	return that.Cells[that.Index(point)]
}

// Place - puts a mark on the cell at index.
func (that *Board) Place(index int, piece Piece) error {
	if index < 0 || index >= len(that.Cells) {
		return fmt.Errorf("%w: %d", apperror.ErrCellOutOfBounds, index)
	}

	if that.Cells[index] != PieceEmpty {
		return fmt.Errorf("%w: %d", apperror.ErrCellOccupied, index)
	}

	that.Cells[index] = piece
	that.Placed++

	return nil
}

// IsFull - reports whether every cell is taken.
func (that *Board) IsFull() bool {
	return that.Placed == len(that.Cells)
}

// CountEmpty - returns the number of free cells.
func (that *Board) CountEmpty() int {
	count := 0

	for _, cell := range that.Cells {
		if cell == PieceEmpty {
			count++
		}
	}

	return count
}

// Clone - returns a deep copy sharing no state with the original.
func (that *Board) Clone() *Board {
	copied := make([]Piece, len(that.Cells))
	copy(copied, that.Cells)

	return &Board{Size: that.Size, Cells: copied, Placed: that.Placed}
}
