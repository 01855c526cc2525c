package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
	"github.com/rocketscienceinc/tictacbot-backend/testing/suite"
)

func TestStatsRepository_RecordVerdict(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	statsRepo := NewStatsRepository(st.Connection)

	// Given: a few finished games.
	for _, verdict := range []string{
		entity.VerdictXWin,
		entity.VerdictXWin,
		entity.VerdictBotWin,
		entity.VerdictDraw,
	} {
		require.NoError(t, statsRepo.RecordVerdict(ctx, verdict))
	}

	// When: the tallies are read back.
	totals, err := statsRepo.Totals(ctx)

	// Then: every verdict is counted once per game.
	require.NoError(t, err)
	assert.Equal(t, 2, totals.XWins)
	assert.Equal(t, 1, totals.BotWins)
	assert.Equal(t, 0, totals.OWins)
	assert.Equal(t, 1, totals.Draws)
	assert.Equal(t, 4, totals.Played)
}

func TestStatsRepository_Totals(t *testing.T) {
	t.Run("Empty table counts nothing", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		statsRepo := NewStatsRepository(st.Connection)

		totals, err := statsRepo.Totals(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, totals.Played)
	})
}
