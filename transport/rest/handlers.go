package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CurrentGameHandler(w http.ResponseWriter, r *http.Request)
	RecentMatchesHandler(w http.ResponseWriter, r *http.Request)
	StatsHandler(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	CurrentGame() *entity.MatchSnapshot
	RecentMatches(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	LifetimeStats(ctx context.Context) (*entity.StatsTotals, error)
}

type handlers struct {
	logger *slog.Logger

	gameUseCase gameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// CurrentGameHandler - returns the live match as it stands.
func (that *handlers) CurrentGameHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.gameUseCase.CurrentGame())
}

// RecentMatchesHandler - returns the latest archived games. The optional
// limit query parameter caps how many come back.
func (that *handlers) RecentMatchesHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RecentMatchesHandler")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := that.gameUseCase.RecentMatches(r.Context(), limit)
	if err != nil {
		log.Error("failed to get recent matches", "error", err)
		http.Error(w, "failed to get recent matches", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, records)
}

// StatsHandler - returns the lifetime win and draw tallies.
func (that *handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StatsHandler")

	totals, err := that.gameUseCase.LifetimeStats(r.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		http.Error(w, "failed to get stats", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, totals)
}

func (that *handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
