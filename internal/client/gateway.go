package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mangestic/ctfctl/internal/model"
)

// Operation names used in CallError and the in-flight guard.
const (
	OpRegister        = "register"
	OpLogin           = "login"
	OpListLeaderboard = "list-leaderboard"
	OpListChallenges  = "list-challenges"
	OpCreateChallenge = "create-challenge"
	OpSubmitFlag      = "submit-flag"
)

// Fallback messages shown when the server supplies no detail. These
// match the platform's original wording.
var defaultMessages = map[string]string{
	OpRegister:        "Gagal registrasi",
	OpLogin:           "Gagal login",
	OpListLeaderboard: "Gagal memuat leaderboard",
	OpListChallenges:  "Gagal memuat tantangan",
	OpCreateChallenge: "Gagal mengirim tantangan",
	OpSubmitFlag:      "Flag salah",
}

// CallError is the single failure shape the gateway produces. Transport
// failures, malformed payloads, and application rejections all collapse
// into it; Message is always human-readable, preferring the server's
// detail over the operation default.
type CallError struct {
	Op      string
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Gateway executes the remote operations against the platform API,
// one network round trip per invocation.
type Gateway struct {
	client *Client
}

// NewGateway creates a Gateway on top of the given base URL
func NewGateway(baseURL string) *Gateway {
	return &Gateway{client: NewClient(baseURL)}
}

// Register creates an account. On success it returns the username the
// account was created under.
func (g *Gateway) Register(ctx context.Context, username, email, password string) (string, error) {
	req := registerRequest{Username: username, Email: email, Password: password}
	body, err := g.post(ctx, OpRegister, "/api/register", req)
	if err != nil {
		return "", err
	}

	// The server echoes the username; fall back to the submitted one
	// if the body is empty or unparseable.
	var resp authResponse
	if jsonErr := json.Unmarshal(body, &resp); jsonErr == nil && resp.Username != "" {
		return resp.Username, nil
	}
	return username, nil
}

// Login authenticates. The returned username is the server's, which is
// not necessarily the submitted one.
func (g *Gateway) Login(ctx context.Context, username, password string) (string, error) {
	req := loginRequest{Username: username, Password: password}
	body, err := g.post(ctx, OpLogin, "/api/login", req)
	if err != nil {
		return "", err
	}

	var resp authResponse
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil || resp.Username == "" {
		return "", g.failure(OpLogin, "", jsonErr)
	}
	return resp.Username, nil
}

// ListLeaderboard fetches the full ranked sequence, in server order.
func (g *Gateway) ListLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	items, err := getList[leaderboardItem](g, ctx, OpListLeaderboard, "/api/leaderboard")
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(items))
	for i, it := range items {
		entries[i] = model.LeaderboardEntry{Username: it.Username, Score: it.Score}
	}
	return entries, nil
}

// ListChallenges fetches the full challenge collection.
func (g *Gateway) ListChallenges(ctx context.Context) ([]model.Challenge, error) {
	items, err := getList[challengeItem](g, ctx, OpListChallenges, "/api/challenges")
	if err != nil {
		return nil, err
	}

	challenges := make([]model.Challenge, len(items))
	for i, it := range items {
		challenges[i] = model.Challenge{
			ID:          model.ChallengeID(it.ID),
			Title:       it.Title,
			Description: it.Description,
			Points:      it.Points,
			Tags:        it.Tags,
		}
	}
	return challenges, nil
}

// CreateChallenge submits a contributed challenge.
func (g *Gateway) CreateChallenge(ctx context.Context, draft model.ChallengeDraft) error {
	_, err := g.post(ctx, OpCreateChallenge, "/api/challenges", draft)
	return err
}

// SubmitFlag submits a flag for the given challenge.
func (g *Gateway) SubmitFlag(ctx context.Context, challengeID model.ChallengeID, flag string) error {
	req := submitFlagRequest{ChallengeID: string(challengeID), Flag: flag}
	_, err := g.post(ctx, OpSubmitFlag, "/api/submit-flag", req)
	return err
}

// post performs a POST and normalizes any failure into a CallError.
// On a non-2xx response the server's detail message is preferred.
func (g *Gateway) post(ctx context.Context, op, path string, body any) ([]byte, error) {
	status, respBody, err := g.client.Post(ctx, path, body)
	if err != nil {
		return nil, g.failure(op, "", err)
	}

	if status < 200 || status >= 300 {
		var detail detailResponse
		if jsonErr := json.Unmarshal(respBody, &detail); jsonErr == nil && detail.Detail != "" {
			return nil, g.failure(op, detail.Detail, nil)
		}
		return nil, g.failure(op, "", nil)
	}

	return respBody, nil
}

// getList performs a GET and decodes the {ok, items} envelope. A
// payload without ok:true is rejected the same way a transport failure
// is, never propagated as an empty success.
func getList[T any](g *Gateway, ctx context.Context, op, path string) ([]T, error) {
	status, body, err := g.client.Get(ctx, path)
	if err != nil {
		return nil, g.failure(op, "", err)
	}

	if status < 200 || status >= 300 {
		return nil, g.failure(op, "", nil)
	}

	var envelope listEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, g.failure(op, "", err)
	}
	if !envelope.OK {
		return nil, g.failure(op, "", nil)
	}

	return envelope.Items, nil
}

func (g *Gateway) failure(op, message string, cause error) *CallError {
	if message == "" {
		message = defaultMessages[op]
	}
	return &CallError{Op: op, Message: message, Err: cause}
}

// DefaultMessage returns the fallback message for an operation.
func DefaultMessage(op string) string {
	return defaultMessages[op]
}

// FailureMessage extracts the human-readable message from a gateway
// error, for surfacing through the notification channel.
func FailureMessage(err error) string {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
