package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

type GameUseCase interface {
	ClickCell(index int) (*entity.MatchSnapshot, error)
	CurrentGame() *entity.MatchSnapshot
	RestartGame() *entity.MatchSnapshot

	RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	LifetimeStats(ctx context.Context) (*entity.StatsTotals, error)
}

type matchService interface {
	OnCellClicked(index int) error
	Restart()
	Snapshot() *entity.MatchSnapshot
}

type archiveService interface {
	RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Totals(ctx context.Context) (*entity.StatsTotals, error)
}

type gameUseCase struct {
	logger *slog.Logger

	matchService   matchService
	archiveService archiveService
}

func NewGameUseCase(logger *slog.Logger, matchService matchService, archiveService archiveService) GameUseCase {
	return &gameUseCase{
		logger: logger,

		matchService:   matchService,
		archiveService: archiveService,
	}
}

// ClickCell - plays the human mark on the clicked cell. The fresh snapshot
// comes back even when the click is rejected, so clients can redraw.
func (that *gameUseCase) ClickCell(index int) (*entity.MatchSnapshot, error) {
	if err := that.matchService.OnCellClicked(index); err != nil {
		return that.matchService.Snapshot(), fmt.Errorf("failed to make turn: %w", err)
	}

	return that.matchService.Snapshot(), nil
}

// CurrentGame - returns the live match as it stands.
func (that *gameUseCase) CurrentGame() *entity.MatchSnapshot {
	return that.matchService.Snapshot()
}

// RestartGame - abandons the current game and returns the fresh one.
func (that *gameUseCase) RestartGame() *entity.MatchSnapshot {
	that.matchService.Restart()

	return that.matchService.Snapshot()
}

// RecentMatches - returns the latest archived games, newest first. A limit
// outside (0, maxHistoryLimit] falls back to sane bounds.
func (that *gameUseCase) RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	log := that.logger.With("method", "RecentMatches")

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := that.archiveService.RecentMatches(ctx, limit)
	if err != nil {
		log.Error("failed to get recent matches", "error", err)

		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}

	return records, nil
}

// LifetimeStats - returns the win and draw tallies over every archived game.
func (that *gameUseCase) LifetimeStats(ctx context.Context) (*entity.StatsTotals, error) {
	log := that.logger.With("method", "LifetimeStats")

	totals, err := that.archiveService.Totals(ctx)
	if err != nil {
		log.Error("failed to get stats", "error", err)

		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return totals, nil
}
