package service

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/tictacbot-backend/internal/apperror"
	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
	"github.com/rocketscienceinc/tictacbot-backend/internal/tictactoe"
)

// BotService runs the adversarial search away from the game loop. One search
// is in flight at most; starting a new one discards whatever the previous
// search produced.
type BotService interface {
	StartThinking(board *entity.Board, piece entity.Piece)
	IsThinking() bool
	HasMoveReady() bool
	TakeMove() (int, error)
}

type botService struct {
	logger *slog.Logger
	rules  tictactoe.Rules

	thinking  atomic.Bool
	moveReady atomic.Bool

	moveMutex sync.Mutex
	readyMove int

	searchDone chan struct{}
}

func NewBotService(logger *slog.Logger, rules tictactoe.Rules) BotService {
	return &botService{
		logger: logger.With("component", "bot_service"),
		rules:  rules,
	}
}

// StartThinking - kicks off a search for the best reply on a snapshot of the
// board. The snapshot is taken here, so the live board may keep changing
// while the search runs.
func (that *botService) StartThinking(board *entity.Board, piece entity.Piece) {
	if that.searchDone != nil {
		<-that.searchDone
	}

	that.thinking.Store(true)
	that.moveReady.Store(false)

	snapshot := board.Clone()
	done := make(chan struct{})
	that.searchDone = done

	go func() {
		defer close(done)

		move := that.rules.FindBestMove(snapshot, piece)

		that.moveMutex.Lock()
		that.readyMove = move
		that.moveMutex.Unlock()

		that.moveReady.Store(true)
		that.thinking.Store(false)

		that.logger.Debug("search finished", "move", move, "piece", piece)
	}()
}

// IsThinking - reports whether a search is still running.
func (that *botService) IsThinking() bool {
	return that.thinking.Load()
}

// HasMoveReady - reports whether a finished search result is waiting.
func (that *botService) HasMoveReady() bool {
	return that.moveReady.Load()
}

// TakeMove - hands over the finished search result, at most once per search.
func (that *botService) TakeMove() (int, error) {
	that.moveMutex.Lock()
	defer that.moveMutex.Unlock()

	that.moveReady.Store(false)

	if that.readyMove == tictactoe.NoMove {
		return tictactoe.NoMove, apperror.ErrNoAvailableMoves
	}

	return that.readyMove, nil
}
