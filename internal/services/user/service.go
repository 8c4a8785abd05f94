package user

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/mcoot/boggle-go/internal/dependencies/clock"
	"github.com/mcoot/boggle-go/internal/model"
	"github.com/mcoot/boggle-go/internal/storage"
)

// Service maps opaque tokens to users
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new user registry
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Register creates a user with the trimmed nickname and returns its fresh token
func (s *Service) Register(ctx context.Context, nickname string) (*model.User, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, model.ErrEmptyNickname
	}

	user := &model.User{
		Token:     model.Token(uuid.NewString()),
		Nickname:  nickname,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		s.logger.Error("failed to save user",
			slog.String("player", Fingerprint(user.Token)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("player", Fingerprint(user.Token)),
		slog.String("nickname", nickname),
	)

	return user, nil
}

// Lookup returns the user for a token, or ErrUnknownUser
func (s *Service) Lookup(ctx context.Context, token model.Token) (*model.User, error) {
	if token == "" {
		return nil, model.ErrUnknownUser
	}
	user, err := s.storage.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

// Fingerprint returns a short stable digest of a token, safe to log or publish
func Fingerprint(token model.Token) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(ctx context.Context, nickname string) (*model.User, error)
	Lookup(ctx context.Context, token model.Token) (*model.User, error)
}

var _ ServiceInterface = (*Service)(nil)
