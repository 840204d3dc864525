package redis

import (
	"fmt"

	"github.com/mangestic/ctfctl/internal/model"
)

// Key prefix for all platform data
const keyPrefix = "mangestic"

// userKey returns the Redis key for a User
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, username)
}

// scoreboardKey returns the Redis key of the score sorted set
func scoreboardKey() string {
	return fmt.Sprintf("%s:scoreboard", keyPrefix)
}

// challengeKey returns the Redis key for a ChallengeRecord
func challengeKey(id model.ChallengeID) string {
	return fmt.Sprintf("%s:challenge:%s", keyPrefix, id)
}

// challengeOrderKey returns the Redis key of the creation-order list
func challengeOrderKey() string {
	return fmt.Sprintf("%s:idx:challenges", keyPrefix)
}

// solvesKey returns the Redis key of a user's solved-challenge set
func solvesKey(username string) string {
	return fmt.Sprintf("%s:solves:%s", keyPrefix, username)
}
