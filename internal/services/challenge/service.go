package challenge

import (
	"context"
	"errors"

	"github.com/mangestic/ctfctl/internal/dependencies/clock"
	"github.com/mangestic/ctfctl/internal/dependencies/random"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/storage"
)

const (
	// ChallengeIDLength is the length of generated challenge IDs
	ChallengeIDLength = 24
	// ChallengeIDAlphabet is the hex alphabet used for challenge IDs
	ChallengeIDAlphabet = "0123456789abcdef"
)

// Service manages the challenge collection and flag submissions.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
}

// New creates a new challenge service
func New(storage storage.Storage, clock clock.Clock, random random.Random) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
	}
}

// Create accepts a contributed challenge and assigns it an ID. Points
// below zero are clamped to zero.
func (s *Service) Create(ctx context.Context, draft model.ChallengeDraft) (*model.ChallengeRecord, error) {
	points := draft.Points
	if points < 0 {
		points = 0
	}

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	record := &model.ChallengeRecord{
		Challenge: model.Challenge{
			ID:          model.ChallengeID(s.random.String(ChallengeIDLength, ChallengeIDAlphabet)),
			Title:       draft.Title,
			Description: draft.Description,
			Points:      points,
			Tags:        tags,
		},
		Flag:      draft.Flag,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveChallenge(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// List returns the published challenges in creation order, flags
// stripped.
func (s *Service) List(ctx context.Context) ([]model.Challenge, error) {
	records, err := s.storage.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	challenges := make([]model.Challenge, len(records))
	for i, r := range records {
		challenges[i] = r.Challenge
	}
	return challenges, nil
}

// SubmitFlag checks a flag against its challenge. When a username is
// supplied and the flag is correct, the challenge's points are awarded
// once; repeat solves are rejected so scores cannot be farmed.
func (s *Service) SubmitFlag(ctx context.Context, id model.ChallengeID, flag, username string) error {
	record, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return err
	}

	if flag != record.Flag {
		return model.ErrWrongFlag
	}

	if username == "" {
		// Anonymous submission: correct, but nobody to credit
		return nil
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}

	solved, err := s.storage.HasSolve(ctx, username, id)
	if err != nil {
		return err
	}
	if solved {
		return model.ErrAlreadySolved
	}

	user.Score += record.Points
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return err
	}

	return s.storage.SaveSolve(ctx, username, id)
}
