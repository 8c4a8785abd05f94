package game

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/boggle-go/internal/events"
	"github.com/mcoot/boggle-go/internal/model"
	"github.com/mcoot/boggle-go/internal/services/match"
	"github.com/mcoot/boggle-go/internal/services/user"
)

// JoinResult describes where a join request was seated
type JoinResult struct {
	MatchID model.MatchID
	// Activated is true when this join filled the second seat and started the match
	Activated bool
}

// Engine is the entry point for every game operation. All operations, including
// status reads, run inside one exclusive section so that lazy expiry is atomic
// with the read. Events are published after the section is released.
type Engine struct {
	mu sync.Mutex

	users     *user.Service
	matches   *match.Controller
	publisher events.Publisher
	logger    *slog.Logger
}

// New creates a new GameEngine
func New(
	users *user.Service,
	matches *match.Controller,
	publisher events.Publisher,
	logger *slog.Logger,
) *Engine {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Engine{
		users:     users,
		matches:   matches,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterUser creates a user and returns its token
func (e *Engine) RegisterUser(ctx context.Context, nickname string) (model.Token, error) {
	e.mu.Lock()
	u, err := e.users.Register(ctx, nickname)
	e.mu.Unlock()
	if err != nil {
		return "", err
	}

	e.publish(ctx, []model.Event{{
		Type:      model.EventUserRegistered,
		Timestamp: u.CreatedAt,
		Player:    user.Fingerprint(u.Token),
	}})
	return u.Token, nil
}

// JoinMatch seats token in the pending match
func (e *Engine) JoinMatch(ctx context.Context, token model.Token, timeLimit int) (*JoinResult, error) {
	var result *JoinResult
	err := e.run(ctx, func() error {
		id, activated, err := e.matches.Join(ctx, token, timeLimit)
		if err != nil {
			return err
		}
		result = &JoinResult{MatchID: id, Activated: activated}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CancelJoin gives up the caller's seat in the pending match
func (e *Engine) CancelJoin(ctx context.Context, token model.Token) error {
	return e.run(ctx, func() error {
		return e.matches.Cancel(ctx, token)
	})
}

// PlayWord submits a word and returns the score credited for this play
func (e *Engine) PlayWord(ctx context.Context, id model.MatchID, token model.Token, word string) (int, error) {
	var score int
	err := e.run(ctx, func() error {
		var err error
		score, err = e.matches.Play(ctx, id, token, word)
		return err
	})
	return score, err
}

// MatchStatus returns the status view of a match
func (e *Engine) MatchStatus(ctx context.Context, id model.MatchID, brief bool) (*model.StatusView, error) {
	var view *model.StatusView
	err := e.run(ctx, func() error {
		var err error
		view, err = e.matches.Status(ctx, id, brief)
		return err
	})
	return view, err
}

// PendingMatchID returns the id of the match currently open for joining
func (e *Engine) PendingMatchID(ctx context.Context) (model.MatchID, error) {
	var id model.MatchID
	err := e.run(ctx, func() error {
		m, err := e.matches.PendingMatch(ctx)
		if err != nil {
			return err
		}
		id = m.ID
		return nil
	})
	return id, err
}

// run executes fn under the lock, then publishes whatever events it produced.
// Events are published even if fn failed part way, since the state they describe
// has already been committed.
func (e *Engine) run(ctx context.Context, fn func() error) error {
	e.mu.Lock()
	err := fn()
	pending := e.matches.Drain()
	e.mu.Unlock()

	e.publish(ctx, pending)
	return err
}

func (e *Engine) publish(ctx context.Context, pending []model.Event) {
	if len(pending) == 0 {
		return
	}
	if err := e.publisher.Publish(ctx, pending...); err != nil {
		e.logger.Warn("failed to publish events",
			slog.Int("count", len(pending)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type EngineInterface interface {
	RegisterUser(ctx context.Context, nickname string) (model.Token, error)
	JoinMatch(ctx context.Context, token model.Token, timeLimit int) (*JoinResult, error)
	CancelJoin(ctx context.Context, token model.Token) error
	PlayWord(ctx context.Context, id model.MatchID, token model.Token, word string) (int, error)
	MatchStatus(ctx context.Context, id model.MatchID, brief bool) (*model.StatusView, error)
}

var _ EngineInterface = (*Engine)(nil)
