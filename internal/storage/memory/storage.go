package memory

import (
	"context"

	"github.com/mcoot/boggle-go/internal/model"
	"github.com/mcoot/boggle-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It holds no lock of its own; callers must serialize access.
type Storage struct {
	users   map[model.Token]*model.User
	matches map[model.MatchID]*model.Match

	lastMatchID model.MatchID
	pendingID   model.MatchID
	hasPending  bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:   make(map[model.Token]*model.User),
		matches: make(map[model.MatchID]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.users[user.Token] = user
	return nil
}

func (s *Storage) GetUser(ctx context.Context, token model.Token) (*model.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.matches[match.ID] = match
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match, nil
}

func (s *Storage) NextMatchID(ctx context.Context) (model.MatchID, error) {
	s.lastMatchID++
	return s.lastMatchID, nil
}

// Pending slot

func (s *Storage) GetPendingMatchID(ctx context.Context) (model.MatchID, bool, error) {
	return s.pendingID, s.hasPending, nil
}

func (s *Storage) SetPendingMatchID(ctx context.Context, id model.MatchID) error {
	s.pendingID = id
	s.hasPending = true
	return nil
}

// Counts returns the number of stored users and matches
func (s *Storage) Counts() (users, matches int) {
	return len(s.users), len(s.matches)
}
