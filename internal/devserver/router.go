package devserver

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mangestic/ctfctl/internal/devserver/handler"
	devmiddleware "github.com/mangestic/ctfctl/internal/devserver/middleware"
	"github.com/mangestic/ctfctl/internal/middleware"
	"github.com/mangestic/ctfctl/internal/services/account"
	"github.com/mangestic/ctfctl/internal/services/challenge"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AccountService   *account.Service
	ChallengeService *challenge.Service
}

// NewRouter creates a router serving the platform API contract
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	accountHandler := handler.NewAccountHandler(cfg.AccountService)
	challengeHandler := handler.NewChallengeHandler(cfg.ChallengeService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := devmiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", accountHandler.Leaderboard).Methods(http.MethodGet)

	api.HandleFunc("/challenges", challengeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/challenges", challengeHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/submit-flag", challengeHandler.SubmitFlag).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
