package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users          map[string]*model.User
	challenges     map[model.ChallengeID]*model.ChallengeRecord
	challengeOrder []model.ChallengeID
	solves         map[string]map[model.ChallengeID]bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[string]*model.User),
		challenges: make(map[model.ChallengeID]*model.ChallengeRecord),
		solves:     make(map[string]map[model.ChallengeID]bool),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = user
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsersByScore(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}

	// Highest score first; ties break on username for stable output
	sort.Slice(users, func(i, j int) bool {
		if users[i].Score != users[j].Score {
			return users[i].Score > users[j].Score
		}
		return users[i].Username < users[j].Username
	})

	return users, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, record *model.ChallengeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.challenges[record.ID]; !exists {
		s.challengeOrder = append(s.challengeOrder, record.ID)
	}
	s.challenges[record.ID] = record
	return nil
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.ChallengeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.challenges[id]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return record, nil
}

func (s *Storage) ListChallenges(ctx context.Context) ([]*model.ChallengeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*model.ChallengeRecord, 0, len(s.challengeOrder))
	for _, id := range s.challengeOrder {
		records = append(records, s.challenges[id])
	}
	return records, nil
}

// Solve tracking

func (s *Storage) SaveSolve(ctx context.Context, username string, id model.ChallengeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.solves[username] == nil {
		s.solves[username] = make(map[model.ChallengeID]bool)
	}
	s.solves[username][id] = true
	return nil
}

func (s *Storage) HasSolve(ctx context.Context, username string, id model.ChallengeID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solves[username][id], nil
}
