package tictactoe

import "github.com/rocketscienceinc/tictacbot-backend/internal/entity"

// NoMove is returned by FindBestMove when no cell can be played.
const NoMove = -1

const (
	winScore  = 1
	loseScore = -1
	drawScore = 0
)

// FindBestMove - picks the strongest cell for piece by trying every free
// cell and scoring each with an exhaustive minimax. The search never touches
// the caller's board, and ties keep the lowest index, so the result is
// deterministic for a given position.
func (that Rules) FindBestMove(board *entity.Board, piece entity.Piece) int {
	scratch := board.Clone()

	bestMove := NoMove
	bestScore := loseScore - 1

	for i := range scratch.Cells {
		if scratch.Cells[i] != entity.PieceEmpty {
			continue
		}

		scratch.Cells[i] = piece
		score := that.minimax(scratch, i, piece, false)
		scratch.Cells[i] = entity.PieceEmpty

		if score > bestScore {
			bestScore = score
			bestMove = i
		}
	}

	return bestMove
}

// minimax - scores the position for maximizer after the move at lastPlaced.
// A win counts +1 and a loss -1 regardless of depth, a full board counts 0.
func (that Rules) minimax(board *entity.Board, lastPlaced int, maximizer entity.Piece, maximizing bool) int {
	if move, won := that.CheckWin(board, lastPlaced); won {
		if move.Piece == maximizer {
			return winScore
		}

		return loseScore
	}

	if board.CountEmpty() == 0 {
		return drawScore
	}

	if maximizing {
		best := loseScore - 1

		for i := range board.Cells {
			if board.Cells[i] != entity.PieceEmpty {
				continue
			}

			board.Cells[i] = maximizer
			if score := that.minimax(board, i, maximizer, false); score > best {
				best = score
			}
			board.Cells[i] = entity.PieceEmpty
		}

		return best
	}

	best := winScore + 1
	opponent := maximizer.Opponent()

	for i := range board.Cells {
		if board.Cells[i] != entity.PieceEmpty {
			continue
		}

		board.Cells[i] = opponent
		if score := that.minimax(board, i, maximizer, true); score < best {
			best = score
		}
		board.Cells[i] = entity.PieceEmpty
	}

	return best
}
