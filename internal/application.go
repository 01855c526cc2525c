package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictacbot-backend/internal/config"
	"github.com/rocketscienceinc/tictacbot-backend/internal/repository"
	"github.com/rocketscienceinc/tictacbot-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictacbot-backend/internal/service"
	"github.com/rocketscienceinc/tictacbot-backend/internal/tictactoe"
	"github.com/rocketscienceinc/tictacbot-backend/internal/usecase"
	"github.com/rocketscienceinc/tictacbot-backend/transport/rest"
	"github.com/rocketscienceinc/tictacbot-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := conf.Game.Validate(); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	matchRepo := repository.NewMatchRepository(redisStorage.Connection, conf.Archive.KeepLast)
	statsRepo := repository.NewStatsRepository(sqliteStorage.Connection)

	archiveService := service.NewArchiveService(logger, matchRepo, statsRepo)
	botService := service.NewBotService(logger, tictactoe.NewRules(conf.Game.WinLength))
	matchService := service.NewMatchService(logger, matchOptions(conf.Game), botService, archiveService)

	gameUseCase := usecase.NewGameUseCase(logger, matchService, archiveService)

	// run the game loop
	go runGameLoop(ctx, log, matchService, conf.Game.TickRate)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, rest.NewHandlers(logger, gameUseCase)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// runGameLoop feeds the match service its per-frame elapsed time at a fixed
// tick rate until the context is canceled.
func runGameLoop(ctx context.Context, log *slog.Logger, match service.MatchService, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping game loop")
			return
		case now := <-ticker.C:
			match.Update(now.Sub(last))
			last = now
		}
	}
}

func matchOptions(game config.Game) service.MatchOptions {
	return service.MatchOptions{
		BoardSize:    game.BoardSize,
		WinLength:    game.WinLength,
		BotEnabled:   game.BotEnabled,
		PlayerStarts: game.PlayerStarts,
		ThinkTime:    game.ThinkTime,
		Cooldown:     game.Cooldown,
	}
}
