package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Scores live in a sorted set so the leaderboard read is a single
// ZREVRANGE.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline keeps the user record and the scoreboard entry in sync
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.Username), data, 0)
	pipe.ZAdd(ctx, scoreboardKey(), redis.Z{
		Score:  float64(user.Score),
		Member: user.Username,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsersByScore(ctx context.Context) ([]*model.User, error) {
	usernames, err := s.client.ZRevRange(ctx, scoreboardKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(usernames) == 0 {
		return []*model.User{}, nil
	}

	keys := make([]string, len(usernames))
	for i, name := range usernames {
		keys[i] = userKey(name)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Scoreboard member without a user record
		}
		var user model.User
		if err := json.Unmarshal([]byte(val.(string)), &user); err != nil {
			continue // Skip invalid data
		}
		users = append(users, &user)
	}

	return users, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, record *model.ChallengeRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	exists, err := s.client.Exists(ctx, challengeKey(record.ID)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, challengeKey(record.ID), data, 0)
	if exists == 0 {
		pipe.RPush(ctx, challengeOrderKey(), string(record.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.ChallengeRecord, error) {
	data, err := s.client.Get(ctx, challengeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var record model.ChallengeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) ListChallenges(ctx context.Context) ([]*model.ChallengeRecord, error) {
	ids, err := s.client.LRange(ctx, challengeOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.ChallengeRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = challengeKey(model.ChallengeID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.ChallengeRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var record model.ChallengeRecord
		if err := json.Unmarshal([]byte(val.(string)), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}

// Solve tracking

func (s *Storage) SaveSolve(ctx context.Context, username string, id model.ChallengeID) error {
	return s.client.SAdd(ctx, solvesKey(username), string(id)).Err()
}

func (s *Storage) HasSolve(ctx context.Context, username string, id model.ChallengeID) (bool, error) {
	return s.client.SIsMember(ctx, solvesKey(username), string(id)).Result()
}
