package tictactoe

import (
	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

// Rules evaluates placements for a fixed run length.
type Rules struct {
	winLength int
}

// NewRules - returns rules that require winLength marks in a row.
func NewRules(winLength int) Rules {
	return Rules{winLength: winLength}
}

// WinLength - returns the run length needed to win.
func (that Rules) WinLength() int {
	return that.winLength
}

// CheckWin - reports whether the mark at lastPlaced completed a run.
// Directions are tried in the fixed order of entity.Directions, so a move
// finishing several runs at once reports the first of them.
func (that Rules) CheckWin(board *entity.Board, lastPlaced int) (entity.WinningMove, bool) {
	if lastPlaced < 0 || lastPlaced >= len(board.Cells) {
		return entity.WinningMove{}, false
	}

	piece := board.Cells[lastPlaced]
	if piece == entity.PieceEmpty {
		return entity.WinningMove{}, false
	}

	pos := board.PointAt(lastPlaced)

	for _, dir := range entity.Directions {
		length := that.countLine(board, piece, pos, dir) + that.countLine(board, piece, pos.Add(dir.Negate()), dir.Negate())
		if length < that.winLength {
			continue
		}

		return entity.WinningMove{
			Piece:     piece,
			Anchor:    that.runEnd(board, piece, pos, dir),
			Direction: dir,
			Length:    length,
		}, true
	}

	return entity.WinningMove{}, false
}

// countLine - counts consecutive marks of piece from pos along dir,
// pos included. Board edges and foreign marks both end the run.
func (that Rules) countLine(board *entity.Board, piece entity.Piece, pos, dir entity.Point) int {
	count := 0

	for board.InBounds(pos) && board.At(pos) == piece {
		count++
		pos = pos.Add(dir)
	}

	return count
}

// runEnd - walks from pos to the run's last cell along dir.
func (that Rules) runEnd(board *entity.Board, piece entity.Piece, pos, dir entity.Point) entity.Point {
	for {
		next := pos.Add(dir)
		if !board.InBounds(next) || board.At(next) != piece {
			return pos
		}

		pos = next
	}
}
