package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictacbot-backend/internal/apperror"
	"github.com/rocketscienceinc/tictacbot-backend/internal/entity"
	"github.com/rocketscienceinc/tictacbot-backend/internal/tictactoe"
)

// MatchOptions fixes the rule set and pacing for every game this service runs.
type MatchOptions struct {
	BoardSize    int
	WinLength    int
	BotEnabled   bool
	PlayerStarts bool
	ThinkTime    time.Duration
	Cooldown     time.Duration
}

// MatchService drives the live match. It owns the board, sequences human and
// bot turns, and restarts the game once the end-of-game cooldown has passed.
type MatchService interface {
	OnCellClicked(index int) error
	Update(elapsed time.Duration)
	Restart()
	Snapshot() *entity.MatchSnapshot
}

type matchService struct {
	logger *slog.Logger

	opts    MatchOptions
	rules   tictactoe.Rules
	bot     BotService
	archive ArchiveService

	botPiece entity.Piece

	mu           sync.Mutex
	board        *entity.Board
	turn         entity.Piece
	status       string
	verdict      string
	winningMove  *entity.WinningMove
	thinkElapsed time.Duration
	endElapsed   time.Duration
	gameElapsed  time.Duration
}

func NewMatchService(logger *slog.Logger, opts MatchOptions, bot BotService, archive ArchiveService) MatchService {
	match := &matchService{
		logger:  logger.With("component", "match_service"),
		opts:    opts,
		rules:   tictactoe.NewRules(opts.WinLength),
		bot:     bot,
		archive: archive,
		board:   entity.NewBoard(opts.BoardSize),
	}

	if opts.BotEnabled {
		match.botPiece = entity.PieceO
		if !opts.PlayerStarts {
			match.botPiece = entity.PieceX
		}
	}

	match.reset()

	return match
}

// OnCellClicked - plays the current human mark on the clicked cell.
func (that *matchService) OnCellClicked(index int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch that.status {
	case entity.StatusEnded:
		return apperror.ErrGameFinished
	case entity.StatusAwaitingSearch:
		return apperror.ErrSearchInProgress
	}

	if err := that.board.Place(index, that.turn); err != nil {
		return fmt.Errorf("failed to place mark: %w", err)
	}

	that.afterPlacement(index)

	return nil
}

// Update - advances the match by one frame of elapsed time. The bot's reply
// is applied here once the search is done and the minimum think time has
// passed; after a finished game the cooldown eventually restarts the match.
func (that *matchService) Update(elapsed time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.gameElapsed += elapsed

	switch that.status {
	case entity.StatusEnded:
		that.endElapsed += elapsed
		if that.endElapsed >= that.opts.Cooldown {
			that.logger.Info("cooldown passed, starting a new game")
			that.reset()
		}
	case entity.StatusAwaitingSearch:
		that.thinkElapsed += elapsed
		if that.thinkElapsed < that.opts.ThinkTime || !that.bot.HasMoveReady() {
			return
		}

		that.applySearchResult()
	}
}

// Restart - abandons the current game and starts a fresh one.
func (that *matchService) Restart() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.logger.Info("game restarted by request")
	that.reset()
}

// Snapshot - returns a read-only copy of the match for clients to draw.
func (that *matchService) Snapshot() *entity.MatchSnapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := &entity.MatchSnapshot{
		Board:  append([]entity.Piece(nil), that.board.Cells...),
		Size:   that.board.Size,
		Placed: that.board.Placed,
		Turn:   that.turn,
		Status: that.status,
	}

	if that.status == entity.StatusEnded {
		snapshot.Verdict = that.verdict
		snapshot.Message = entity.EndMessage(that.verdict)
	}

	if that.winningMove != nil {
		move := *that.winningMove
		snapshot.WinningMove = &move
		snapshot.WinningCells = move.Cells(that.board.Size)
	}

	return snapshot
}

// applySearchResult - takes the finished search result and plays it.
func (that *matchService) applySearchResult() {
	move, err := that.bot.TakeMove()
	if err != nil {
		if errors.Is(err, apperror.ErrNoAvailableMoves) {
			that.logger.Error("search found no move on a playable board")
			return
		}

		that.logger.Error("failed to take search result", "error", err)

		return
	}

	if err = that.board.Place(move, that.botPiece); err != nil {
		that.logger.Error("dropping stale search result", "move", move, "error", err)
		return
	}

	that.logger.Debug("bot played", "move", move, "piece", that.botPiece)
	that.afterPlacement(move)
}

// afterPlacement - settles the game state once a mark landed on index.
func (that *matchService) afterPlacement(index int) {
	if move, won := that.rules.CheckWin(that.board, index); won {
		that.finishWin(move)
		return
	}

	if that.board.IsFull() {
		that.finishDraw()
		return
	}

	that.turn = that.turn.Opponent()

	if that.isBotTurn() {
		that.dispatchSearch()
		return
	}

	that.status = entity.StatusAwaitingHuman
}

func (that *matchService) isBotTurn() bool {
	return that.opts.BotEnabled && that.turn == that.botPiece
}

// dispatchSearch - hands the bot a snapshot and waits for its reply.
func (that *matchService) dispatchSearch() {
	that.status = entity.StatusAwaitingSearch
	that.thinkElapsed = 0
	that.bot.StartThinking(that.board, that.botPiece)
}

func (that *matchService) finishWin(move entity.WinningMove) {
	that.winningMove = &move

	verdict := entity.VerdictOWin
	if move.Piece == entity.PieceX {
		verdict = entity.VerdictXWin
	}
	if that.opts.BotEnabled && move.Piece == that.botPiece {
		verdict = entity.VerdictBotWin
	}

	that.finish(verdict)
}

func (that *matchService) finishDraw() {
	that.finish(entity.VerdictDraw)
}

func (that *matchService) finish(verdict string) {
	that.status = entity.StatusEnded
	that.verdict = verdict
	that.endElapsed = 0

	that.logger.Info("game ended", "verdict", verdict, "message", entity.EndMessage(verdict))

	if that.archive == nil {
		return
	}

	that.archive.RecordFinished(entity.MatchRecord{
		Board:    append([]entity.Piece(nil), that.board.Cells...),
		Size:     that.board.Size,
		Verdict:  verdict,
		Message:  entity.EndMessage(verdict),
		Moves:    that.board.Placed,
		Duration: that.gameElapsed,
	})
}

// reset - clears the board and opens a new game. Crosses always open; when
// the bot owns them, its search starts right away.
func (that *matchService) reset() {
	that.board.Reset()
	that.turn = entity.PieceX
	that.status = entity.StatusAwaitingHuman
	that.verdict = ""
	that.winningMove = nil
	that.thinkElapsed = 0
	that.endElapsed = 0
	that.gameElapsed = 0

	if that.isBotTurn() {
		that.dispatchSearch()
	}
}
