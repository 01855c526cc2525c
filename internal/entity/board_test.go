package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictacbot-backend/internal/apperror"
)

func TestPiece_Opponent(t *testing.T) {
	t.Run("X and O are opponents", func(t *testing.T) {
		require.Equal(t, PieceO, PieceX.Opponent())
		require.Equal(t, PieceX, PieceO.Opponent())
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on a free cell", func(t *testing.T) {
		// Given: an empty 3x3 board.
		board := NewBoard(3)

		// When: X is placed on cell 4.
		err := board.Place(4, PieceX)

		// Then: the cell holds X and the counter moved.
		require.NoError(t, err)
		require.Equal(t, PieceX, board.Cells[4])
		require.Equal(t, 1, board.Placed)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with X already on cell 0.
		board := NewBoard(3)
		require.NoError(t, board.Place(0, PieceX))

		// When: O tries the same cell.
		err := board.Place(0, PieceO)

		// Then: the placement fails and the board is unchanged.
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, PieceX, board.Cells[0])
		require.Equal(t, 1, board.Placed)
	})

	t.Run("Rejects out of bounds indexes", func(t *testing.T) {
		board := NewBoard(3)

		require.ErrorIs(t, board.Place(-1, PieceX), apperror.ErrCellOutOfBounds)
		require.ErrorIs(t, board.Place(9, PieceX), apperror.ErrCellOutOfBounds)
		require.Equal(t, 0, board.Placed)
	})
}

func TestBoard_Reset(t *testing.T) {
	t.Run("Clears all cells and the counter", func(t *testing.T) {
		board := NewBoard(3)
		require.NoError(t, board.Place(0, PieceX))
		require.NoError(t, board.Place(4, PieceO))

		board.Reset()

		require.Equal(t, 0, board.Placed)
		require.Equal(t, 9, board.CountEmpty())
		require.Equal(t, 3, board.Size)
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Full after size*size placements", func(t *testing.T) {
		board := NewBoard(3)
		piece := PieceX

		for i := 0; i < 9; i++ {
			require.False(t, board.IsFull())
			require.NoError(t, board.Place(i, piece))
			piece = piece.Opponent()
		}

		require.True(t, board.IsFull())
		require.Equal(t, 0, board.CountEmpty())
	})
}

func TestBoard_Clone(t *testing.T) {
	t.Run("Clone shares no cells with the original", func(t *testing.T) {
		board := NewBoard(3)
		require.NoError(t, board.Place(2, PieceX))

		clone := board.Clone()
		clone.Cells[2] = PieceEmpty
		require.NoError(t, clone.Place(5, PieceO))

		require.Equal(t, PieceX, board.Cells[2])
		require.Equal(t, PieceEmpty, board.Cells[5])
		require.Equal(t, 1, board.Placed)
	})
}

func TestBoard_Index(t *testing.T) {
	t.Run("Index and PointAt are inverses", func(t *testing.T) {
		board := NewBoard(4)

		for i := range board.Cells {
			point := board.PointAt(i)
			require.True(t, board.InBounds(point))
			require.Equal(t, i, board.Index(point))
		}
	})

	t.Run("Row major layout", func(t *testing.T) {
		board := NewBoard(3)

		// Cell 5 sits in the middle row, rightmost column.
		require.Equal(t, Point{X: 2, Y: 1}, board.PointAt(5))
		require.Equal(t, 5, board.Index(Point{X: 2, Y: 1}))
	})
}

func TestWinningMove_Cells(t *testing.T) {
	t.Run("Top row run anchored at the left", func(t *testing.T) {
		move := WinningMove{
			Piece:     PieceX,
			Anchor:    Point{X: 0, Y: 0},
			Direction: DirHorizontal,
			Length:    3,
		}

		require.Equal(t, []int{0, 1, 2}, move.Cells(3))
	})

	t.Run("Anti diagonal run anchored at the bottom left", func(t *testing.T) {
		move := WinningMove{
			Piece:     PieceO,
			Anchor:    Point{X: 0, Y: 2},
			Direction: DirAntiDiag,
			Length:    3,
		}

		require.Equal(t, []int{6, 4, 2}, move.Cells(3))
	})
}
