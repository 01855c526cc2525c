package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

type StatsRepository interface {
	RecordVerdict(ctx context.Context, verdict string) error
	Totals(ctx context.Context) (*entity.StatsTotals, error)
}

type dbStats struct {
	conn *sql.DB
}

// NewStatsRepository - tallies finished games by verdict in SQLite.
func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

func (that *dbStats) RecordVerdict(ctx context.Context, verdict string) error {
	query := `INSERT INTO match_results (verdict, total) VALUES (?, 1)
		ON CONFLICT(verdict) DO UPDATE SET total = total + 1`

	_, err := that.conn.ExecContext(ctx, query, verdict)
	if err != nil {
		return fmt.Errorf("can't record verdict: %w", err)
	}

	return nil
}

func (that *dbStats) Totals(ctx context.Context) (*entity.StatsTotals, error) {
	query := `SELECT verdict, total FROM match_results`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't read stats: %w", err)
	}
	defer rows.Close()

	totals := &entity.StatsTotals{}

	for rows.Next() {
		var verdict string
		var total int

		if err = rows.Scan(&verdict, &total); err != nil {
			return nil, fmt.Errorf("can't scan stats row: %w", err)
		}

		switch verdict {
		case entity.VerdictBotWin:
			totals.BotWins = total
		case entity.VerdictXWin:
			totals.XWins = total
		case entity.VerdictOWin:
			totals.OWins = total
		case entity.VerdictDraw:
			totals.Draws = total
		}

		totals.Played += total
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate stats rows: %w", err)
	}

	return totals, nil
}
