package session

import (
	"strconv"
	"strings"

	"github.com/mangestic/ctfctl/internal/model"
)

// Form buffers hold uncommitted input. They are cleared only when the
// backend confirms the mutation; any failure leaves them untouched so
// the user can correct and resubmit.

// LoginForm buffers login input.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterForm buffers registration input.
type RegisterForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ContributionForm buffers a challenge contribution. Points and Tags
// stay as raw text until submission coerces them.
type ContributionForm struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Flag        string `validate:"required"`
	Points      string
	Tags        string
}

// DefaultContributionForm returns an empty contribution with the
// standard starting point value.
func DefaultContributionForm() ContributionForm {
	return ContributionForm{Points: "100"}
}

// Draft coerces the buffered input into a submission payload.
func (f ContributionForm) Draft() model.ChallengeDraft {
	return model.ChallengeDraft{
		Title:       f.Title,
		Description: f.Description,
		Flag:        f.Flag,
		Points:      ParsePoints(f.Points),
		Tags:        ParseTags(f.Tags),
	}
}

// FlagSubmissionForm is armed against a single challenge at a time.
type FlagSubmissionForm struct {
	ChallengeID model.ChallengeID `validate:"required"`
	Flag        string            `validate:"required"`
}

// ParsePoints coerces raw point input to a non-negative integer,
// defaulting to 0 when unparseable or negative.
func ParsePoints(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseTags splits comma-delimited tag input, trimming whitespace and
// dropping empty entries. Order is preserved.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
