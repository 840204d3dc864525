package response

import "github.com/mangestic/ctfctl/internal/model"

// ListResponse is the envelope for collection endpoints
type ListResponse[T any] struct {
	OK    bool `json:"ok"`
	Items []T  `json:"items"`
}

// AuthResponse echoes the authenticated username
type AuthResponse struct {
	Username string `json:"username"`
}

// LeaderboardItem is one scoreboard row
type LeaderboardItem struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// ChallengeItem is a challenge as exposed to clients; the flag never
// appears here
type ChallengeItem struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Tags        []string `json:"tags"`
}

// LeaderboardFromEntries converts model entries to the wire shape
func LeaderboardFromEntries(entries []model.LeaderboardEntry) ListResponse[LeaderboardItem] {
	items := make([]LeaderboardItem, len(entries))
	for i, e := range entries {
		items[i] = LeaderboardItem{Username: e.Username, Score: e.Score}
	}
	return ListResponse[LeaderboardItem]{OK: true, Items: items}
}

// ChallengesFromModels converts challenges to the wire shape
func ChallengesFromModels(challenges []model.Challenge) ListResponse[ChallengeItem] {
	items := make([]ChallengeItem, len(challenges))
	for i, c := range challenges {
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		items[i] = ChallengeItem{
			ID:          string(c.ID),
			Title:       c.Title,
			Description: c.Description,
			Points:      c.Points,
			Tags:        tags,
		}
	}
	return ListResponse[ChallengeItem]{OK: true, Items: items}
}
