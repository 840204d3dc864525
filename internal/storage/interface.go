package storage

import (
	"context"

	"github.com/mangestic/ctfctl/internal/model"
)

// Storage defines the interface for platform data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// ListUsersByScore returns all users ordered by score, highest
	// first. This ordering is the leaderboard.
	ListUsersByScore(ctx context.Context) ([]*model.User, error)

	// Challenge operations
	SaveChallenge(ctx context.Context, record *model.ChallengeRecord) error
	GetChallenge(ctx context.Context, id model.ChallengeID) (*model.ChallengeRecord, error)
	// ListChallenges returns challenges in creation order.
	ListChallenges(ctx context.Context) ([]*model.ChallengeRecord, error)

	// Solve tracking
	SaveSolve(ctx context.Context, username string, id model.ChallengeID) error
	HasSolve(ctx context.Context, username string, id model.ChallengeID) (bool, error)
}
