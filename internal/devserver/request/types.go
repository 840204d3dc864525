package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateChallengeRequest is the request body for contributing a challenge
type CreateChallengeRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Flag        string   `json:"flag" validate:"required"`
	Points      int      `json:"points" validate:"gte=0"`
	Tags        []string `json:"tags"`
}

// SubmitFlagRequest is the request body for submitting a flag. Username
// is optional and not part of the client contract; when present, a
// correct flag awards the challenge's points to that account.
type SubmitFlagRequest struct {
	ChallengeID string `json:"challenge_id" validate:"required"`
	Flag        string `json:"flag" validate:"required"`
	Username    string `json:"username,omitempty"`
}
