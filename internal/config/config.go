package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the server configuration read from the environment
type Config struct {
	Host     string
	Port     int
	LogLevel slog.Level

	BoardSize    int
	MinTimeLimit int
	MaxTimeLimit int

	// RedisURL enables event publishing when set
	RedisURL      string
	EventsChannel string
}

// Default returns the configuration used when no variables are set
func Default() Config {
	return Config{
		Port:          8080,
		LogLevel:      slog.LevelInfo,
		BoardSize:     4,
		MinTimeLimit:  5,
		MaxTimeLimit:  120,
		EventsChannel: "boggle:events",
	}
}

// Load reads a .env file from the working directory if there is one, then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	getInt := func(key string, dst *int) {
		v, ok := get(key)
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not an integer", key, v))
			return
		}
		*dst = n
	}

	if v, ok := get("HOST"); ok {
		cfg.Host = v
	}
	getInt("PORT", &cfg.Port)
	if v, ok := get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}
	getInt("BOARD_SIZE", &cfg.BoardSize)
	getInt("MIN_TIME_LIMIT", &cfg.MinTimeLimit)
	getInt("MAX_TIME_LIMIT", &cfg.MaxTimeLimit)
	if v, ok := get("REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := get("EVENTS_CHANNEL"); ok {
		cfg.EventsChannel = v
	}

	if len(errs) == 0 {
		errs = append(errs, cfg.Validate())
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", c.Port))
	}
	if c.BoardSize < 2 || c.BoardSize > 8 {
		errs = append(errs, fmt.Errorf("BOARD_SIZE: %d must be between 2 and 8", c.BoardSize))
	}
	if c.MinTimeLimit < 1 {
		errs = append(errs, fmt.Errorf("MIN_TIME_LIMIT: %d must be positive", c.MinTimeLimit))
	}
	if c.MaxTimeLimit < c.MinTimeLimit {
		errs = append(errs, fmt.Errorf("MAX_TIME_LIMIT: %d is below MIN_TIME_LIMIT %d", c.MaxTimeLimit, c.MinTimeLimit))
	}
	return errors.Join(errs...)
}
