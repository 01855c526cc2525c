package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrSearchInProgress = errors.New("the computer is still thinking")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrCellOutOfBounds  = errors.New("cell is outside the board")
	ErrNoAvailableMoves = errors.New("no available moves")
)
