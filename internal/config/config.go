package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// The exhaustive search explores every continuation, which is only
// tractable on the classic board.
const maxBotBoardSize = 3

var (
	ErrBoardTooSmall    = errors.New("board size must be at least 3")
	ErrBoardTooLarge    = errors.New("board size too large for the bot")
	ErrBadWinLength     = errors.New("win length must fit the board")
	ErrBadTickRate      = errors.New("tick rate must be positive")
	ErrBadThinkDuration = errors.New("think time and cooldown must not be negative")
)

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictacbot.db"`
	Game              Game    `yaml:"game"`
	Archive           Archive `yaml:"archive"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	BoardSize    int           `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"3"`
	WinLength    int           `yaml:"win-length" env:"GAME_WIN_LENGTH" env-default:"3"`
	BotEnabled   bool          `yaml:"bot-enabled" env:"GAME_BOT_ENABLED"`
	PlayerStarts bool          `yaml:"player-starts" env:"GAME_PLAYER_STARTS"`
	ThinkTime    time.Duration `yaml:"think-time" env:"GAME_THINK_TIME"`
	Cooldown     time.Duration `yaml:"restart-cooldown" env:"GAME_RESTART_COOLDOWN"`
	TickRate     int           `yaml:"tick-rate" env:"GAME_TICK_RATE" env-default:"60"`
}

type Archive struct {
	KeepLast int `yaml:"keep-last" env:"ARCHIVE_KEEP_LAST" env-default:"50"`
}

// MustLoad - load all configurations in config.yml file.
//
// cleanenv writes env-default over any zero-valued field, so an explicit
// false or 0s in the file would be clobbered by the tag. Fields whose zero
// value is a valid setting get their defaults seeded here instead.
func MustLoad(path string) *Config {
	config := &Config{
		Game: Game{
			BotEnabled:   true,
			PlayerStarts: true,
			ThinkTime:    500 * time.Millisecond,
			Cooldown:     2 * time.Second,
		},
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Validate - rejects game settings the engine cannot honor. A board wider
// than 3 is fine for two humans but not for the exhaustive bot search.
func (that *Game) Validate() error {
	if that.BoardSize < 3 {
		return fmt.Errorf("%w: got %d", ErrBoardTooSmall, that.BoardSize)
	}

	if that.WinLength < 3 || that.WinLength > that.BoardSize {
		return fmt.Errorf("%w: length %d on a %dx%d board", ErrBadWinLength, that.WinLength, that.BoardSize, that.BoardSize)
	}

	if that.BotEnabled && that.BoardSize > maxBotBoardSize {
		return fmt.Errorf("%w: %dx%d", ErrBoardTooLarge, that.BoardSize, that.BoardSize)
	}

	if that.TickRate < 1 {
		return fmt.Errorf("%w: got %d", ErrBadTickRate, that.TickRate)
	}

	if that.ThinkTime < 0 || that.Cooldown < 0 {
		return ErrBadThinkDuration
	}

	return nil
}
