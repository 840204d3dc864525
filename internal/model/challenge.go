package model

import "time"

// ChallengeID uniquely identifies a challenge. It is opaque to the
// client; the backend assigns it.
type ChallengeID string

// Challenge is a published problem as visible to participants.
// The flag is write-only at creation time and never appears here.
type Challenge struct {
	ID          ChallengeID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Points      int         `json:"points"`
	Tags        []string    `json:"tags"`
}

// ChallengeDraft is a contributed challenge before the backend accepts
// it. This is the only place the flag travels alongside challenge data.
type ChallengeDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Flag        string   `json:"flag"`
	Points      int      `json:"points"`
	Tags        []string `json:"tags"`
}

// ChallengeRecord is the server-side form of a challenge, including the
// secret flag. It never crosses the API boundary whole.
type ChallengeRecord struct {
	Challenge
	Flag      string    `json:"flag"`
	CreatedAt time.Time `json:"created_at"`
}
