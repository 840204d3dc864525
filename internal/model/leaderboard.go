package model

// LeaderboardEntry is one row of the scoreboard. Rank is positional:
// the displayed rank of an entry is 1 + its index in the sequence the
// server returned, and the client never re-sorts or de-duplicates.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}
