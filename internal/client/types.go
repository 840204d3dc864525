package client

// Wire shapes for the platform API. Decoding is strict in the sense
// that a list payload must carry ok:true to be accepted; anything else
// is treated as a failed request rather than propagated.

type listEnvelope[T any] struct {
	OK    bool `json:"ok"`
	Items []T  `json:"items"`
}

type leaderboardItem struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type challengeItem struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Tags        []string `json:"tags"`
}

type authResponse struct {
	Username string `json:"username"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type submitFlagRequest struct {
	ChallengeID string `json:"challenge_id"`
	Flag        string `json:"flag"`
}
