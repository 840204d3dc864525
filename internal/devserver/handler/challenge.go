package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mangestic/ctfctl/internal/devserver/apierr"
	"github.com/mangestic/ctfctl/internal/devserver/request"
	"github.com/mangestic/ctfctl/internal/devserver/response"
	"github.com/mangestic/ctfctl/internal/model"
	"github.com/mangestic/ctfctl/internal/services/challenge"
)

// ChallengeHandler handles the challenge collection and flag submissions
type ChallengeHandler struct {
	challenges *challenge.Service
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challenges *challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{
		challenges: challenges,
	}
}

// List handles GET /api/challenges
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challenges.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengesFromModels(challenges))
}

// Create handles POST /api/challenges
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Body tidak valid"))
		return
	}

	if err := validate.Struct(req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Judul, deskripsi, dan flag wajib diisi"))
		return
	}

	record, err := h.challenges.Create(r.Context(), model.ChallengeDraft{
		Title:       req.Title,
		Description: req.Description,
		Flag:        req.Flag,
		Points:      req.Points,
		Tags:        req.Tags,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"_id": string(record.ID)})
}

// SubmitFlag handles POST /api/submit-flag
func (h *ChallengeHandler) SubmitFlag(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Body tidak valid"))
		return
	}

	if err := validate.Struct(req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Challenge ID dan flag wajib diisi"))
		return
	}

	err := h.challenges.SubmitFlag(r.Context(), model.ChallengeID(req.ChallengeID), req.Flag, req.Username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
