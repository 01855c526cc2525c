package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

var errArchiveDown = errors.New("archive down")

type stubGameUseCase struct {
	snapshot  *entity.MatchSnapshot
	records   []*entity.MatchRecord
	totals    *entity.StatsTotals
	lastLimit int
	err       error
}

func (that *stubGameUseCase) CurrentGame() *entity.MatchSnapshot {
	return that.snapshot
}

func (that *stubGameUseCase) RecentMatches(_ context.Context, limit int) ([]*entity.MatchRecord, error) {
	that.lastLimit = limit

	if that.err != nil {
		return nil, that.err
	}

	return that.records, nil
}

func (that *stubGameUseCase) LifetimeStats(_ context.Context) (*entity.StatsTotals, error) {
	if that.err != nil {
		return nil, that.err
	}

	return that.totals, nil
}

func testHandlers(useCase *stubGameUseCase) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewHandlers(logger, useCase)
}

func TestHandlers_Ping(t *testing.T) {
	h := testHandlers(&stubGameUseCase{})

	recorder := httptest.NewRecorder()
	h.PingHandler(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestHandlers_CurrentGame(t *testing.T) {
	useCase := &stubGameUseCase{
		snapshot: &entity.MatchSnapshot{
			Board:  []entity.Piece{"X", "", "", "", "", "", "", "", ""},
			Size:   3,
			Placed: 1,
			Turn:   entity.PieceO,
			Status: entity.StatusAwaitingSearch,
		},
	}
	h := testHandlers(useCase)

	recorder := httptest.NewRecorder()
	h.CurrentGameHandler(recorder, httptest.NewRequest(http.MethodGet, "/api/game", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var snapshot entity.MatchSnapshot
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &snapshot))
	assert.Equal(t, entity.StatusAwaitingSearch, snapshot.Status)
	assert.Equal(t, entity.PieceX, snapshot.Board[0])
}

func TestHandlers_RecentMatches(t *testing.T) {
	t.Run("Passes the limit through", func(t *testing.T) {
		useCase := &stubGameUseCase{
			records: []*entity.MatchRecord{{ID: "abc", Verdict: entity.VerdictDraw}},
		}
		h := testHandlers(useCase)

		recorder := httptest.NewRecorder()
		h.RecentMatchesHandler(recorder, httptest.NewRequest(http.MethodGet, "/api/matches?limit=2", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 2, useCase.lastLimit)

		var records []*entity.MatchRecord
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "abc", records[0].ID)
	})

	t.Run("Archive failures become a 500", func(t *testing.T) {
		h := testHandlers(&stubGameUseCase{err: errArchiveDown})

		recorder := httptest.NewRecorder()
		h.RecentMatchesHandler(recorder, httptest.NewRequest(http.MethodGet, "/api/matches", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestHandlers_Stats(t *testing.T) {
	t.Run("Returns the tallies", func(t *testing.T) {
		h := testHandlers(&stubGameUseCase{totals: &entity.StatsTotals{Draws: 7, Played: 7}})

		recorder := httptest.NewRecorder()
		h.StatsHandler(recorder, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var totals entity.StatsTotals
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &totals))
		assert.Equal(t, 7, totals.Draws)
	})

	t.Run("Stats failures become a 500", func(t *testing.T) {
		h := testHandlers(&stubGameUseCase{err: errArchiveDown})

		recorder := httptest.NewRecorder()
		h.StatsHandler(recorder, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
