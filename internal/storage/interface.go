package storage

import (
	"context"

	"github.com/mcoot/boggle-go/internal/model"
)

// Storage defines the interface for game state. Implementations are not required to be
// safe for concurrent use: the game engine serializes every call.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, token model.Token) (*model.User, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	NextMatchID(ctx context.Context) (model.MatchID, error)

	// Pending slot
	GetPendingMatchID(ctx context.Context) (model.MatchID, bool, error)
	SetPendingMatchID(ctx context.Context, id model.MatchID) error
}
