package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mangestic/ctfctl/internal/client"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/notify"
)

// ErrBusy is returned when an operation is invoked while a previous
// invocation of the same operation is still in flight. Nothing is
// dispatched and no state changes.
var ErrBusy = errors.New("operation already in flight")

// ErrInvalidInput is returned when a form fails validation before
// dispatch. The failure is surfaced through the notification channel.
var ErrInvalidInput = errors.New("invalid form input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Controller owns all client-side state for one user session: the
// authenticated identity, the two collection caches, the four form
// buffers, and the notification channel. It is the single writer of
// all of them; the caches are only ever replaced wholesale.
type Controller struct {
	gateway *client.Gateway
	notify  *notify.Center
	logger  *slog.Logger

	mu         sync.Mutex
	session    model.Session
	board      []model.LeaderboardEntry
	challenges []model.Challenge

	loginForm    LoginForm
	registerForm RegisterForm
	contribution ContributionForm
	flagForm     FlagSubmissionForm

	inflight map[string]bool
}

// NewController creates a session controller. State lives only as long
// as the controller; there is no persistence and no sign-out short of
// discarding it.
func NewController(gateway *client.Gateway, center *notify.Center, logger *slog.Logger) *Controller {
	return &Controller{
		gateway:      gateway,
		notify:       center,
		logger:       logger,
		contribution: DefaultContributionForm(),
		inflight:     make(map[string]bool),
	}
}

// Start performs the eager initial fetch of both collections. Failures
// are swallowed: a quiet, possibly-empty view beats interrupting the
// user before they have done anything.
func (c *Controller) Start(ctx context.Context) {
	c.RefreshLeaderboard(ctx)
	c.RefreshChallenges(ctx)
}

// RefreshLeaderboard replaces the leaderboard cache with a fresh fetch.
// On failure the previous snapshot stays visible and nothing is
// surfaced to the user.
func (c *Controller) RefreshLeaderboard(ctx context.Context) {
	entries, err := c.gateway.ListLeaderboard(ctx)
	if err != nil {
		c.logger.Debug("leaderboard fetch failed, keeping stale snapshot",
			slog.String("error", err.Error()))
		return
	}

	c.mu.Lock()
	c.board = entries
	c.mu.Unlock()
}

// RefreshChallenges replaces the challenge cache with a fresh fetch,
// with the same silent-staleness failure mode as the leaderboard.
func (c *Controller) RefreshChallenges(ctx context.Context) {
	challenges, err := c.gateway.ListChallenges(ctx)
	if err != nil {
		c.logger.Debug("challenges fetch failed, keeping stale snapshot",
			slog.String("error", err.Error()))
		return
	}

	c.mu.Lock()
	c.challenges = challenges
	c.mu.Unlock()
}

// Login submits the login form. On success the session takes the
// username the server returned, which is not necessarily the submitted
// one, and the form is cleared.
func (c *Controller) Login(ctx context.Context) error {
	c.mu.Lock()
	form := c.loginForm
	c.mu.Unlock()

	if err := validate.Struct(form); err != nil {
		c.notify.Error(client.DefaultMessage(client.OpLogin))
		return ErrInvalidInput
	}

	if !c.begin(client.OpLogin) {
		return ErrBusy
	}
	defer c.end(client.OpLogin)

	username, err := c.gateway.Login(ctx, form.Username, form.Password)
	if err != nil {
		c.notify.Error(client.FailureMessage(err))
		return err
	}

	c.mu.Lock()
	c.session.Username = username
	c.loginForm = LoginForm{}
	c.mu.Unlock()

	c.notify.Info("Berhasil masuk")
	return nil
}

// Register submits the registration form. On success the session takes
// the registered username and the form is cleared.
func (c *Controller) Register(ctx context.Context) error {
	c.mu.Lock()
	form := c.registerForm
	c.mu.Unlock()

	if err := validate.Struct(form); err != nil {
		c.notify.Error(client.DefaultMessage(client.OpRegister))
		return ErrInvalidInput
	}

	if !c.begin(client.OpRegister) {
		return ErrBusy
	}
	defer c.end(client.OpRegister)

	username, err := c.gateway.Register(ctx, form.Username, form.Email, form.Password)
	if err != nil {
		c.notify.Error(client.FailureMessage(err))
		return err
	}

	c.mu.Lock()
	c.session.Username = username
	c.registerForm = RegisterForm{}
	c.mu.Unlock()

	c.notify.Info("Registrasi berhasil")
	return nil
}

// Contribute submits the contribution form as a new challenge. On
// success the form is reset and the challenge cache is re-fetched; on
// failure the form is retained for correction.
func (c *Controller) Contribute(ctx context.Context) error {
	c.mu.Lock()
	form := c.contribution
	c.mu.Unlock()

	if err := validate.Struct(form); err != nil {
		c.notify.Error(client.DefaultMessage(client.OpCreateChallenge))
		return ErrInvalidInput
	}

	if !c.begin(client.OpCreateChallenge) {
		return ErrBusy
	}
	defer c.end(client.OpCreateChallenge)

	if err := c.gateway.CreateChallenge(ctx, form.Draft()); err != nil {
		c.notify.Error(client.FailureMessage(err))
		return err
	}

	c.mu.Lock()
	c.contribution = DefaultContributionForm()
	c.mu.Unlock()

	c.notify.Info("Tantangan dikirim!")
	c.RefreshChallenges(ctx)
	return nil
}

// SubmitFlag submits the armed flag form. On success the form is
// cleared and the leaderboard is re-fetched; on failure the form keeps
// its challenge and flag text unchanged.
func (c *Controller) SubmitFlag(ctx context.Context) error {
	c.mu.Lock()
	form := c.flagForm
	c.mu.Unlock()

	if err := validate.Struct(form); err != nil {
		c.notify.Error(client.DefaultMessage(client.OpSubmitFlag))
		return ErrInvalidInput
	}

	if !c.begin(client.OpSubmitFlag) {
		return ErrBusy
	}
	defer c.end(client.OpSubmitFlag)

	if err := c.gateway.SubmitFlag(ctx, form.ChallengeID, form.Flag); err != nil {
		c.notify.Error(client.FailureMessage(err))
		return err
	}

	c.mu.Lock()
	c.flagForm = FlagSubmissionForm{}
	c.mu.Unlock()

	c.notify.Info("Flag benar! +score")
	c.RefreshLeaderboard(ctx)
	return nil
}

// Form editing

// EditLogin sets the login form buffer.
func (c *Controller) EditLogin(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginForm = LoginForm{Username: username, Password: password}
}

// EditRegister sets the registration form buffer.
func (c *Controller) EditRegister(username, email, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registerForm = RegisterForm{Username: username, Email: email, Password: password}
}

// EditContribution sets the contribution form buffer. Points and tags
// are kept raw until submission.
func (c *Controller) EditContribution(title, description, flag, points, tags string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contribution = ContributionForm{
		Title:       title,
		Description: description,
		Flag:        flag,
		Points:      points,
		Tags:        tags,
	}
}

// ArmFlag targets the flag form at a challenge. Switching to a
// different challenge discards any unsaved flag text, so at most one
// challenge's form is armed at a time.
func (c *Controller) ArmFlag(id model.ChallengeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flagForm.ChallengeID != id {
		c.flagForm = FlagSubmissionForm{ChallengeID: id}
	}
}

// TypeFlag sets the flag text on the armed form.
func (c *Controller) TypeFlag(flag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flagForm.Flag = flag
}

// Read accessors

// Session returns the current session value.
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Leaderboard returns the cached ranked sequence, in server order.
func (c *Controller) Leaderboard() []model.LeaderboardEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]model.LeaderboardEntry, len(c.board))
	copy(entries, c.board)
	return entries
}

// Challenges returns the cached challenge collection.
func (c *Controller) Challenges() []model.Challenge {
	c.mu.Lock()
	defer c.mu.Unlock()
	challenges := make([]model.Challenge, len(c.challenges))
	copy(challenges, c.challenges)
	return challenges
}

// LoginForm returns the current login form buffer.
func (c *Controller) LoginForm() LoginForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginForm
}

// RegisterForm returns the current registration form buffer.
func (c *Controller) RegisterForm() RegisterForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registerForm
}

// Contribution returns the current contribution form buffer.
func (c *Controller) Contribution() ContributionForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contribution
}

// FlagForm returns the current flag submission buffer.
func (c *Controller) FlagForm() FlagSubmissionForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flagForm
}

// Notification returns the currently visible message, if any.
func (c *Controller) Notification() *notify.Message {
	return c.notify.Current()
}

// begin marks an operation in flight; it reports false if one is
// already outstanding.
func (c *Controller) begin(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[op] {
		return false
	}
	c.inflight[op] = true
	return true
}

func (c *Controller) end(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, op)
}
