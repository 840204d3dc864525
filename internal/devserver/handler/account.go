package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mangestic/ctfctl/internal/devserver/apierr"
	"github.com/mangestic/ctfctl/internal/devserver/request"
	"github.com/mangestic/ctfctl/internal/devserver/response"
	"github.com/mangestic/ctfctl/internal/services/account"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AccountHandler handles registration, login, and the leaderboard
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

// Register handles POST /api/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Body tidak valid"))
		return
	}

	if err := validate.Struct(req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Username, email, dan password wajib diisi"))
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponse{Username: user.Username})
}

// Login handles POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Body tidak valid"))
		return
	}

	if err := validate.Struct(req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Username dan password wajib diisi"))
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponse{Username: user.Username})
}

// Leaderboard handles GET /api/leaderboard
func (h *AccountHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.accounts.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}
