package tictactoe

import (
	"testing"

	"github.com/matryer/is"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

func TestRules_FindBestMove(t *testing.T) {
	rules := NewRules(3)

	t.Run("takes an immediate win", func(t *testing.T) {
		is := is.New(t)

		board := boardOf(
			"X", "X", "",
			"O", "O", "",
			"", "", "",
		)

		is.Equal(rules.FindBestMove(board, entity.PieceX), 2)
	})

	t.Run("blocks an immediate threat", func(t *testing.T) {
		is := is.New(t)

		// Cell 8 is the only reply that stops the bottom row. Lower
		// free cells exist, so a tie-break alone cannot pick it.
		board := boardOf(
			"", "", "",
			"", "O", "",
			"X", "X", "",
		)

		is.Equal(rules.FindBestMove(board, entity.PieceO), 8)
	})

	t.Run("prefers winning over blocking", func(t *testing.T) {
		is := is.New(t)

		// O can block the top row or finish its own middle row.
		board := boardOf(
			"X", "X", "",
			"O", "O", "",
			"X", "", "",
		)

		is.Equal(rules.FindBestMove(board, entity.PieceO), 5)
	})

	t.Run("ties resolve to the lowest index", func(t *testing.T) {
		is := is.New(t)

		board := entity.NewBoard(3)

		is.Equal(rules.FindBestMove(board, entity.PieceX), 0)
	})

	t.Run("full board has no move", func(t *testing.T) {
		is := is.New(t)

		board := boardOf(
			"X", "O", "X",
			"X", "O", "O",
			"O", "X", "X",
		)

		is.Equal(rules.FindBestMove(board, entity.PieceX), NoMove)
	})

	t.Run("same position always picks the same cell", func(t *testing.T) {
		is := is.New(t)

		board := boardOf(
			"X", "", "",
			"", "O", "",
			"", "", "",
		)

		first := rules.FindBestMove(board, entity.PieceX)
		for i := 0; i < 5; i++ {
			is.Equal(rules.FindBestMove(board, entity.PieceX), first)
		}
	})

	t.Run("never touches the caller's board", func(t *testing.T) {
		is := is.New(t)

		board := boardOf(
			"X", "", "",
			"", "O", "",
			"", "", "",
		)

		rules.FindBestMove(board, entity.PieceX)

		is.Equal(board.Cells[0], entity.PieceX)
		is.Equal(board.Cells[4], entity.PieceO)
		is.Equal(board.CountEmpty(), 7)
		is.Equal(board.Placed, 2)
	})
}

func TestRules_FindBestMove_SelfPlay(t *testing.T) {
	rules := NewRules(3)

	// playOut has both sides follow the search until the game ends and
	// returns the winning mark, if any.
	playOut := func(t *testing.T, board *entity.Board, turn entity.Piece) (entity.Piece, bool) {
		t.Helper()
		is := is.New(t)

		for !board.IsFull() {
			move := rules.FindBestMove(board, turn)
			is.True(move != NoMove)
			is.NoErr(board.Place(move, turn))

			if win, won := rules.CheckWin(board, move); won {
				return win.Piece, true
			}

			turn = turn.Opponent()
		}

		return entity.PieceEmpty, false
	}

	t.Run("perfect play from an empty board is a draw", func(t *testing.T) {
		is := is.New(t)

		board := entity.NewBoard(3)

		_, won := playOut(t, board, entity.PieceX)
		is.True(!won)
		is.True(board.IsFull())
	})

	t.Run("perfect play holds the draw after a center opening", func(t *testing.T) {
		is := is.New(t)

		board := entity.NewBoard(3)
		is.NoErr(board.Place(4, entity.PieceX))

		_, won := playOut(t, board, entity.PieceO)
		is.True(!won)
	})

	t.Run("perfect play punishes a weak opening reply", func(t *testing.T) {
		is := is.New(t)

		// X in the center answered by O on an edge is a known loss for O.
		board := entity.NewBoard(3)
		is.NoErr(board.Place(4, entity.PieceX))
		is.NoErr(board.Place(1, entity.PieceO))

		winner, won := playOut(t, board, entity.PieceX)
		is.True(won)
		is.Equal(winner, entity.PieceX)
	})
}

func BenchmarkFindBestMove(b *testing.B) {
	rules := NewRules(3)
	board := entity.NewBoard(3)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rules.FindBestMove(board, entity.PieceX)
	}
}
