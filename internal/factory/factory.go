package factory

import (
	"context"
	"io"
	"log/slog"

	"github.com/mcoot/boggle-go/internal/dependencies/clock"
	"github.com/mcoot/boggle-go/internal/dependencies/random"
	"github.com/mcoot/boggle-go/internal/events"
	redisevents "github.com/mcoot/boggle-go/internal/events/redis"
	"github.com/mcoot/boggle-go/internal/services/board"
	"github.com/mcoot/boggle-go/internal/services/game"
	"github.com/mcoot/boggle-go/internal/services/match"
	"github.com/mcoot/boggle-go/internal/services/scoring"
	"github.com/mcoot/boggle-go/internal/services/user"
	"github.com/mcoot/boggle-go/internal/storage"
	"github.com/mcoot/boggle-go/internal/storage/memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Publisher events.Publisher

	// Services
	UserService     *user.Service
	BoardService    *board.Service
	ScoringService  *scoring.Service
	MatchController *match.Controller
	Engine          *game.Engine
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// BoardSize is the side length of generated boards (optional, defaults to 4)
	BoardSize int
	// Match holds the accepted time limit range (optional, defaults to [5,120])
	Match match.Config
	// RedisConfig enables publishing match events to Redis (optional)
	// If nil, events are discarded
	RedisConfig *redisevents.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RedisConfig != nil {
		redisPublisher, err := redisevents.NewPublisher(context.Background(), *cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		publisher = redisPublisher
		logger.Info("publishing events to redis", slog.String("channel", cfg.RedisConfig.Channel))
	}

	return newWithDependencies(memory.New(), clock.New(), random.New(), publisher, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	publisher events.Publisher,
	cfg Config,
	logger *slog.Logger,
) *App {
	userService := user.New(store, clk, logger)
	boardService := board.New(rnd, cfg.BoardSize)
	scoringService := scoring.New()
	matchController := match.NewController(store, userService, boardService, scoringService, clk, cfg.Match, logger)
	engine := game.New(userService, matchController, publisher, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Publisher:       publisher,
		UserService:     userService,
		BoardService:    boardService,
		ScoringService:  scoringService,
		MatchController: matchController,
		Engine:          engine,
	}
}

// Close releases external connections
func (a *App) Close() error {
	return a.Publisher.Close()
}
