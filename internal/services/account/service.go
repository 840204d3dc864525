package account

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mangestic/ctfctl/internal/dependencies/clock"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/storage"
)

// Service handles account registration, authentication, and the
// leaderboard view over registered users.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new account service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Register creates a new user account with a hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Score:        0,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns the account.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// Leaderboard returns the ranked sequence of participants, highest
// score first. The order produced here is the order clients display.
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.storage.ListUsersByScore(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = model.LeaderboardEntry{Username: u.Username, Score: u.Score}
	}
	return entries, nil
}
