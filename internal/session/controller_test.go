package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mangestic/ctfctl/internal/client"
	"github.com/mangestic/ctfctl/internal/dependencies/mocks"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/notify"
	"github.com/mangestic/ctfctl/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	ctx        context.Context
	clock      *mocks.MockClock
	controller *Controller
	srv        *httptest.Server

	mu       sync.Mutex
	handler  http.HandlerFunc
	requests map[string]int
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests = map[string]int{}
	s.handler = s.defaultHandler()

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method+" "+r.URL.Path]++
		h := s.handler
		s.mu.Unlock()
		h(w, r)
	}))

	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	center := notify.NewCenter(s.clock, 0)
	s.controller = NewController(client.NewGateway(s.srv.URL), center, testutil.NopLogger())
}

func (s *ControllerSuite) TearDownTest() {
	s.srv.Close()
}

func (s *ControllerSuite) setHandler(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// overrideRoute serves custom behavior for one method+path and falls
// back to the default backend for everything else.
func (s *ControllerSuite) overrideRoute(method, path string, h http.HandlerFunc) {
	fallback := s.defaultHandler()
	s.setHandler(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == method && r.URL.Path == path {
			h(w, r)
			return
		}
		fallback(w, r)
	})
}

func (s *ControllerSuite) requestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method+" "+path]
}

// defaultHandler is a happy-path backend.
func (s *ControllerSuite) defaultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/leaderboard":
			_, _ = w.Write([]byte(`{"ok":true,"items":[{"username":"alice","score":100}]}`))
		case "GET /api/challenges":
			_, _ = w.Write([]byte(`{"ok":true,"items":[{"_id":"abc","title":"Web 101","description":"d","points":100,"tags":["web"]}]}`))
		case "POST /api/login", "POST /api/register":
			_, _ = w.Write([]byte(`{"username":"alice"}`))
		case "POST /api/challenges":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"_id":"new"}`))
		case "POST /api/submit-flag":
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"not found"}`))
		}
	}
}

func (s *ControllerSuite) notificationText() string {
	msg := s.controller.Notification()
	s.Require().NotNil(msg)
	return msg.Text
}

// Start and refresh

func (s *ControllerSuite) TestStartPopulatesBothCaches() {
	s.controller.Start(s.ctx)

	s.Equal([]model.LeaderboardEntry{{Username: "alice", Score: 100}}, s.controller.Leaderboard())

	challenges := s.controller.Challenges()
	s.Require().Len(challenges, 1)
	s.Equal(model.ChallengeID("abc"), challenges[0].ID)
}

func (s *ControllerSuite) TestStartFailureLeavesEmptyCaches() {
	s.setHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	s.controller.Start(s.ctx)

	s.Empty(s.controller.Leaderboard())
	s.Empty(s.controller.Challenges())
	s.Nil(s.controller.Notification())
}

func (s *ControllerSuite) TestRefreshFailureKeepsStaleSnapshot() {
	s.controller.Start(s.ctx)
	s.Require().NotEmpty(s.controller.Leaderboard())

	s.setHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	s.controller.RefreshLeaderboard(s.ctx)
	s.controller.RefreshChallenges(s.ctx)

	s.Equal([]model.LeaderboardEntry{{Username: "alice", Score: 100}}, s.controller.Leaderboard())
	s.Len(s.controller.Challenges(), 1)
	s.Nil(s.controller.Notification())
}

// Login

func (s *ControllerSuite) TestLoginSuccess() {
	s.controller.EditLogin("alice", "pw")

	err := s.controller.Login(s.ctx)
	s.Require().NoError(err)

	s.Equal("alice", s.controller.Session().Username)
	s.True(s.controller.Session().Authenticated())
	s.Equal(LoginForm{}, s.controller.LoginForm())
	s.Equal("Berhasil masuk", s.notificationText())
}

func (s *ControllerSuite) TestLoginAdoptsServerUsername() {
	s.overrideRoute(http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"Alice"}`))
	})
	s.controller.EditLogin("alice", "pw")

	s.Require().NoError(s.controller.Login(s.ctx))
	s.Equal("Alice", s.controller.Session().Username)
}

func (s *ControllerSuite) TestLoginValidationFailureDoesNotDispatch() {
	s.controller.EditLogin("alice", "")

	err := s.controller.Login(s.ctx)
	s.ErrorIs(err, ErrInvalidInput)

	s.Equal(0, s.requestCount(http.MethodPost, "/api/login"))
	s.Equal("Gagal login", s.notificationText())
	s.Equal(LoginForm{Username: "alice"}, s.controller.LoginForm())
}

func (s *ControllerSuite) TestLoginFailureKeepsFormAndSession() {
	s.overrideRoute(http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Username atau password salah"}`))
	})
	s.controller.EditLogin("alice", "wrong")

	err := s.controller.Login(s.ctx)
	s.Require().Error(err)

	s.False(s.controller.Session().Authenticated())
	s.Equal(LoginForm{Username: "alice", Password: "wrong"}, s.controller.LoginForm())
	s.Equal("Username atau password salah", s.notificationText())
}

// Register

func (s *ControllerSuite) TestRegisterSuccess() {
	s.controller.EditRegister("alice", "alice@example.com", "pw")

	err := s.controller.Register(s.ctx)
	s.Require().NoError(err)

	s.Equal("alice", s.controller.Session().Username)
	s.Equal(RegisterForm{}, s.controller.RegisterForm())
	s.Equal("Registrasi berhasil", s.notificationText())
}

func (s *ControllerSuite) TestRegisterRejectsBadEmail() {
	s.controller.EditRegister("alice", "not-an-email", "pw")

	err := s.controller.Register(s.ctx)
	s.ErrorIs(err, ErrInvalidInput)

	s.Equal(0, s.requestCount(http.MethodPost, "/api/register"))
	s.Equal("Gagal registrasi", s.notificationText())
}

func (s *ControllerSuite) TestRegisterFailureKeepsForm() {
	s.overrideRoute(http.MethodPost, "/api/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Username sudah terdaftar"}`))
	})
	s.controller.EditRegister("alice", "alice@example.com", "pw")

	err := s.controller.Register(s.ctx)
	s.Require().Error(err)

	s.Equal("alice", s.controller.RegisterForm().Username)
	s.Equal("Username sudah terdaftar", s.notificationText())
}

// Contribute

func (s *ControllerSuite) TestContributeSuccessResetsFormAndRefreshes() {
	s.controller.EditContribution("Web 101", "d", "CTF{x}", "250", "web, easy")

	err := s.controller.Contribute(s.ctx)
	s.Require().NoError(err)

	s.Equal(DefaultContributionForm(), s.controller.Contribution())
	s.Equal("Tantangan dikirim!", s.notificationText())
	s.Equal(1, s.requestCount(http.MethodGet, "/api/challenges"))
	s.Len(s.controller.Challenges(), 1)
}

func (s *ControllerSuite) TestContributeValidationFailure() {
	s.controller.EditContribution("", "d", "CTF{x}", "100", "")

	err := s.controller.Contribute(s.ctx)
	s.ErrorIs(err, ErrInvalidInput)

	s.Equal(0, s.requestCount(http.MethodPost, "/api/challenges"))
	s.Equal("Gagal mengirim tantangan", s.notificationText())
}

func (s *ControllerSuite) TestContributeFailureKeepsForm() {
	s.overrideRoute(http.MethodPost, "/api/challenges", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Terjadi kesalahan pada server"}`))
	})
	s.controller.EditContribution("Web 101", "d", "CTF{x}", "250", "web")

	err := s.controller.Contribute(s.ctx)
	s.Require().Error(err)

	s.Equal("Web 101", s.controller.Contribution().Title)
	s.Equal("250", s.controller.Contribution().Points)
	s.Equal(0, s.requestCount(http.MethodGet, "/api/challenges"))
}

// SubmitFlag

func (s *ControllerSuite) TestSubmitFlagSuccess() {
	s.controller.ArmFlag("abc")
	s.controller.TypeFlag("CTF{x}")

	err := s.controller.SubmitFlag(s.ctx)
	s.Require().NoError(err)

	s.Equal(FlagSubmissionForm{}, s.controller.FlagForm())
	s.Equal("Flag benar! +score", s.notificationText())
	s.Equal(1, s.requestCount(http.MethodGet, "/api/leaderboard"))
}

func (s *ControllerSuite) TestSubmitFlagWrongKeepsForm() {
	s.overrideRoute(http.MethodPost, "/api/submit-flag", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Flag salah"}`))
	})
	s.controller.ArmFlag("abc")
	s.controller.TypeFlag("CTF{wrong}")

	err := s.controller.SubmitFlag(s.ctx)
	s.Require().Error(err)

	s.Equal(FlagSubmissionForm{ChallengeID: "abc", Flag: "CTF{wrong}"}, s.controller.FlagForm())
	s.Equal("Flag salah", s.notificationText())
	s.Equal(0, s.requestCount(http.MethodGet, "/api/leaderboard"))
}

func (s *ControllerSuite) TestSubmitFlagRequiresArmedForm() {
	err := s.controller.SubmitFlag(s.ctx)
	s.ErrorIs(err, ErrInvalidInput)
	s.Equal(0, s.requestCount(http.MethodPost, "/api/submit-flag"))
}

// Flag form arming

func (s *ControllerSuite) TestArmFlagSwitchingDiscardsText() {
	s.controller.ArmFlag("abc")
	s.controller.TypeFlag("CTF{typed}")

	s.controller.ArmFlag("other")

	s.Equal(FlagSubmissionForm{ChallengeID: "other"}, s.controller.FlagForm())
}

func (s *ControllerSuite) TestArmFlagSameChallengeKeepsText() {
	s.controller.ArmFlag("abc")
	s.controller.TypeFlag("CTF{typed}")

	s.controller.ArmFlag("abc")

	s.Equal(FlagSubmissionForm{ChallengeID: "abc", Flag: "CTF{typed}"}, s.controller.FlagForm())
}

// In-flight guard

func (s *ControllerSuite) TestLoginWhileInFlightReturnsBusy() {
	arrived := make(chan struct{})
	release := make(chan struct{})
	s.overrideRoute(http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		_, _ = w.Write([]byte(`{"username":"alice"}`))
	})

	s.controller.EditLogin("alice", "pw")

	done := make(chan error, 1)
	go func() {
		done <- s.controller.Login(s.ctx)
	}()

	<-arrived
	err := s.controller.Login(s.ctx)
	s.ErrorIs(err, ErrBusy)
	s.Equal(1, s.requestCount(http.MethodPost, "/api/login"))

	close(release)
	s.NoError(<-done)
}

// Notifications

func (s *ControllerSuite) TestNotificationExpires() {
	s.controller.EditLogin("alice", "pw")
	s.Require().NoError(s.controller.Login(s.ctx))
	s.Require().NotNil(s.controller.Notification())

	s.clock.Advance(notify.DefaultTTL)
	s.Nil(s.controller.Notification())
}

func (s *ControllerSuite) TestNewNotificationReplacesOld() {
	s.controller.EditLogin("alice", "pw")
	s.Require().NoError(s.controller.Login(s.ctx))

	s.controller.EditLogin("alice", "")
	s.Require().ErrorIs(s.controller.Login(s.ctx), ErrInvalidInput)

	msg := s.controller.Notification()
	s.Require().NotNil(msg)
	s.Equal("Gagal login", msg.Text)
	s.Equal(notify.KindError, msg.Kind)
}
