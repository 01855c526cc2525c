package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
	"github.com/rocketscienceinc/tictacbot-backend/internal/pkg"
)

const recordTimeout = 5 * time.Second

// ArchiveService keeps the trail of finished games: the last boards in the
// match archive and the lifetime win and draw tallies.
type ArchiveService interface {
	RecordFinished(record entity.MatchRecord)
	RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Totals(ctx context.Context) (*entity.StatsTotals, error)
}

type matchRepo interface {
	Create(ctx context.Context, record *entity.MatchRecord) error
	ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type statsRepo interface {
	RecordVerdict(ctx context.Context, verdict string) error
	Totals(ctx context.Context) (*entity.StatsTotals, error)
}

type archiveService struct {
	logger *slog.Logger

	matchRepo matchRepo
	statsRepo statsRepo
}

func NewArchiveService(logger *slog.Logger, matchRepo matchRepo, statsRepo statsRepo) ArchiveService {
	return &archiveService{
		logger:    logger.With("component", "archive_service"),
		matchRepo: matchRepo,
		statsRepo: statsRepo,
	}
}

// RecordFinished - archives a finished game in the background. The game loop
// never waits on storage; failures are logged and the match plays on.
func (that *archiveService) RecordFinished(record entity.MatchRecord) {
	record.FinishedAt = time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		log := that.logger.With("method", "RecordFinished", "verdict", record.Verdict)

		id, err := pkg.GenerateMatchID()
		if err != nil {
			log.Error("failed to generate id", "error", err)
			return
		}
		record.ID = id

		if err = that.matchRepo.Create(ctx, &record); err != nil {
			log.Error("failed to archive match", "error", err)
		}

		if err = that.statsRepo.RecordVerdict(ctx, record.Verdict); err != nil {
			log.Error("failed to update stats", "error", err)
		}
	}()
}

// RecentMatches - returns up to limit archived games, newest first.
func (that *archiveService) RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	records, err := that.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	return records, nil
}

// Totals - returns the lifetime tallies over every archived game.
func (that *archiveService) Totals(ctx context.Context) (*entity.StatsTotals, error) {
	totals, err := that.statsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return totals, nil
}
