package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/boggle-go/internal/api"
	"github.com/mcoot/boggle-go/internal/config"
	redisevents "github.com/mcoot/boggle-go/internal/events/redis"
	"github.com/mcoot/boggle-go/internal/factory"
	"github.com/mcoot/boggle-go/internal/services/match"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run serves until a shutdown signal. Errors are logged before they are returned.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:    logger,
		BoardSize: cfg.BoardSize,
		Match: match.Config{
			MinTimeLimit: cfg.MinTimeLimit,
			MaxTimeLimit: cfg.MaxTimeLimit,
		},
	}

	// Publish events only if Redis is configured
	if cfg.RedisURL != "" {
		redisCfg := redisevents.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.Channel = cfg.EventsChannel
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger: logger,
		Engine: app.Engine,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.Int("board_size", cfg.BoardSize),
		slog.Int("min_time_limit", cfg.MinTimeLimit),
		slog.Int("max_time_limit", cfg.MaxTimeLimit),
		slog.Bool("events", cfg.RedisURL != ""),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
