package match

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/mcoot/boggle-go/internal/dependencies/clock"
	"github.com/mcoot/boggle-go/internal/model"
	"github.com/mcoot/boggle-go/internal/services/board"
	"github.com/mcoot/boggle-go/internal/services/scoring"
	"github.com/mcoot/boggle-go/internal/services/user"
	"github.com/mcoot/boggle-go/internal/storage"
)

const (
	DefaultMinTimeLimit = 5
	DefaultMaxTimeLimit = 120
)

// Config holds the bounds for requested time limits, in seconds
type Config struct {
	MinTimeLimit int
	MaxTimeLimit int
}

// Controller owns the match lifecycle: the pending slot, activation, plays and
// lazy expiry. It is not safe for concurrent use; the game engine serializes calls.
type Controller struct {
	storage        storage.Storage
	userService    user.ServiceInterface
	boardService   board.ServiceInterface
	scoringService scoring.ServiceInterface
	clock          clock.Clock
	logger         *slog.Logger

	minTimeLimit int
	maxTimeLimit int

	events []model.Event
}

// NewController creates a new MatchController
func NewController(
	storage storage.Storage,
	userService user.ServiceInterface,
	boardService board.ServiceInterface,
	scoringService scoring.ServiceInterface,
	clock clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.MinTimeLimit <= 0 {
		cfg.MinTimeLimit = DefaultMinTimeLimit
	}
	if cfg.MaxTimeLimit <= 0 {
		cfg.MaxTimeLimit = DefaultMaxTimeLimit
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Controller{
		storage:        storage,
		userService:    userService,
		boardService:   boardService,
		scoringService: scoringService,
		clock:          clock,
		logger:         logger,
		minTimeLimit:   cfg.MinTimeLimit,
		maxTimeLimit:   cfg.MaxTimeLimit,
	}
}

// Join seats token in the pending match. When the second seat is filled the match
// becomes active and a fresh pending match is opened. Returns the joined match id
// and whether this join activated it.
func (c *Controller) Join(ctx context.Context, token model.Token, timeLimit int) (model.MatchID, bool, error) {
	if timeLimit < c.minTimeLimit || timeLimit > c.maxTimeLimit {
		return 0, false, model.ErrTimeLimitOutOfRange
	}
	if _, err := c.userService.Lookup(ctx, token); err != nil {
		return 0, false, err
	}

	m, err := c.PendingMatch(ctx)
	if err != nil {
		return 0, false, err
	}

	if m.SeatOf(token) != model.SeatNone {
		return 0, false, model.ErrAlreadySeated
	}

	seat := model.Seat1
	if !m.Players[model.Seat1].IsEmpty() {
		seat = model.Seat2
	}
	player := m.Player(seat)
	player.Token = token
	player.RequestedTimeLimit = timeLimit
	m.UpdatedAt = c.clock.Now()

	c.logger.Info("player joined match",
		slog.Int64("match_id", int64(m.ID)),
		slog.String("player", user.Fingerprint(token)),
		slog.Int("seat", int(seat)+1),
		slog.Int("time_limit", timeLimit),
	)
	c.emit(model.EventPlayerJoined, m.ID, token, model.PlayerJoinedPayload{
		Seat:      seat,
		TimeLimit: timeLimit,
	})

	activated := m.SeatedCount() == len(m.Players)
	if activated {
		if err := c.activate(ctx, m, token); err != nil {
			return 0, false, err
		}
	}

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return 0, false, err
	}

	return m.ID, activated, nil
}

// activate deals the board, starts the clock and opens the next pending match
func (c *Controller) activate(ctx context.Context, m *model.Match, token model.Token) error {
	now := c.clock.Now()

	m.Board = c.boardService.Generate()
	m.TimeLimit = (m.Players[model.Seat1].RequestedTimeLimit + m.Players[model.Seat2].RequestedTimeLimit) / 2
	m.TimeRemaining = m.TimeLimit
	m.StartedAt = now
	m.State = model.MatchStateActive
	m.UpdatedAt = now

	next, err := c.openPending(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("match activated",
		slog.Int64("match_id", int64(m.ID)),
		slog.Int("time_limit", m.TimeLimit),
		slog.Int64("next_match_id", int64(next.ID)),
	)
	c.emit(model.EventMatchActivated, m.ID, token, model.MatchActivatedPayload{
		Board:       m.Board.String(),
		TimeLimit:   m.TimeLimit,
		NextMatchID: next.ID,
	})

	return nil
}

// Cancel vacates the caller's player 1 seat in the pending match
func (c *Controller) Cancel(ctx context.Context, token model.Token) error {
	if _, err := c.userService.Lookup(ctx, token); err != nil {
		return err
	}

	m, err := c.PendingMatch(ctx)
	if err != nil {
		return err
	}

	// Only the first seat can be given up
	player := m.Player(model.Seat1)
	if player.Token != token {
		return model.ErrNotSeated
	}

	player.Token = ""
	player.RequestedTimeLimit = 0
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return err
	}

	c.logger.Info("join cancelled",
		slog.Int64("match_id", int64(m.ID)),
		slog.String("player", user.Fingerprint(token)),
	)
	c.emit(model.EventJoinCancelled, m.ID, token, nil)

	return nil
}

// Play submits word for token in an active match and returns the score credited for it
func (c *Controller) Play(ctx context.Context, id model.MatchID, token model.Token, word string) (int, error) {
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := c.Refresh(ctx, m); err != nil {
		return 0, err
	}

	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return 0, model.ErrEmptyWord
	}
	if _, err := c.userService.Lookup(ctx, token); err != nil {
		return 0, err
	}
	seat := m.SeatOf(token)
	if seat == model.SeatNone {
		return 0, model.ErrNotParticipant
	}
	if m.State != model.MatchStateActive {
		return 0, model.ErrMatchNotActive
	}

	// Unformable words are a legal play that scores nothing and leaves no record
	if !c.boardService.CanBeFormed(m.Board, word) {
		c.logger.Debug("word not on board",
			slog.Int64("match_id", int64(m.ID)),
			slog.String("player", user.Fingerprint(token)),
			slog.String("word", word),
		)
		c.emit(model.EventWordPlayed, m.ID, token, model.WordPlayedPayload{Word: word})
		return 0, nil
	}

	score := c.scoringService.Apply(m, seat, word, c.scoringService.WordScore(word))
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return 0, err
	}

	c.logger.Debug("word played",
		slog.Int64("match_id", int64(m.ID)),
		slog.String("player", user.Fingerprint(token)),
		slog.String("word", word),
		slog.Int("score", score),
	)
	c.emit(model.EventWordPlayed, m.ID, token, model.WordPlayedPayload{Word: word, Score: score})

	return score, nil
}

// Status returns the projection of a match after bringing its clock up to date
func (c *Controller) Status(ctx context.Context, id model.MatchID, brief bool) (*model.StatusView, error) {
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx, m); err != nil {
		return nil, err
	}

	view := &model.StatusView{State: m.State}
	if m.State == model.MatchStatePending {
		return view, nil
	}

	remaining := m.TimeRemaining
	view.TimeRemaining = &remaining

	if brief {
		view.Player1 = &model.PlayerView{Score: m.Players[model.Seat1].Score}
		view.Player2 = &model.PlayerView{Score: m.Players[model.Seat2].Score}
		return view, nil
	}

	limit := m.TimeLimit
	view.TimeLimit = &limit
	view.Board = m.Board

	withWords := m.State == model.MatchStateComplete
	if view.Player1, err = c.playerView(ctx, m.Player(model.Seat1), withWords); err != nil {
		return nil, err
	}
	if view.Player2, err = c.playerView(ctx, m.Player(model.Seat2), withWords); err != nil {
		return nil, err
	}

	return view, nil
}

func (c *Controller) playerView(ctx context.Context, p *model.MatchPlayer, withWords bool) (*model.PlayerView, error) {
	u, err := c.userService.Lookup(ctx, p.Token)
	if err != nil {
		return nil, err
	}

	view := &model.PlayerView{
		Nickname: u.Nickname,
		Score:    p.Score,
	}
	if withWords {
		view.Words = make([]model.WordScore, 0, len(p.Words))
		for word, score := range p.Words {
			view.Words = append(view.Words, model.WordScore{Word: word, Score: score})
		}
		sort.Slice(view.Words, func(i, j int) bool {
			return view.Words[i].Word < view.Words[j].Word
		})
	}
	return view, nil
}

// Refresh recomputes the remaining time of an active match and completes it once
// the time has run out. Matches in other states are left untouched.
func (c *Controller) Refresh(ctx context.Context, m *model.Match) error {
	if m.State != model.MatchStateActive {
		return nil
	}

	m.TimeRemaining = max(0, m.TimeLimit-clock.Since(c.clock, m.StartedAt))
	if m.TimeRemaining > 0 {
		return c.storage.SaveMatch(ctx, m)
	}

	m.State = model.MatchStateComplete
	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return err
	}

	p1, p2 := m.Players[model.Seat1].Score, m.Players[model.Seat2].Score
	c.logger.Info("match completed",
		slog.Int64("match_id", int64(m.ID)),
		slog.Int("player1_score", p1),
		slog.Int("player2_score", p2),
	)
	c.emit(model.EventMatchCompleted, m.ID, "", model.MatchCompletedPayload{
		Player1Score: p1,
		Player2Score: p2,
	})

	return nil
}

// PendingMatch returns the match open for joining, creating it if none exists yet
func (c *Controller) PendingMatch(ctx context.Context) (*model.Match, error) {
	id, ok, err := c.storage.GetPendingMatchID(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c.openPending(ctx)
	}
	return c.storage.GetMatch(ctx, id)
}

// openPending allocates a fresh match and makes it the pending one
func (c *Controller) openPending(ctx context.Context) (*model.Match, error) {
	id, err := c.storage.NextMatchID(ctx)
	if err != nil {
		return nil, err
	}

	m := model.NewMatch(id, c.clock.Now())
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	if err := c.storage.SetPendingMatchID(ctx, id); err != nil {
		return nil, err
	}

	c.logger.Debug("pending match opened", slog.Int64("match_id", int64(id)))
	return m, nil
}

func (c *Controller) emit(eventType model.EventType, id model.MatchID, token model.Token, payload any) {
	c.events = append(c.events, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		MatchID:   id,
		Player:    user.Fingerprint(token),
		Payload:   payload,
	})
}

// Drain returns the events recorded since the last call and clears the buffer
func (c *Controller) Drain() []model.Event {
	events := c.events
	c.events = nil
	return events
}
