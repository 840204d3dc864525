package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mangestic/ctfctl/internal/model"
)

// ErrorResponse is the failure shape of the platform contract: a
// non-2xx status with a human-readable detail message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// httpError combines an HTTP status code with a detail message
type httpError struct {
	status int
	detail string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.detail
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: he.detail})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, "Username sudah terdaftar"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Username atau password salah"}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User tidak ditemukan"}
	case errors.Is(err, model.ErrChallengeNotFound):
		return &httpError{http.StatusNotFound, "Tantangan tidak ditemukan"}
	case errors.Is(err, model.ErrWrongFlag):
		return &httpError{http.StatusBadRequest, "Flag salah"}
	case errors.Is(err, model.ErrAlreadySolved):
		return &httpError{http.StatusBadRequest, "Tantangan sudah pernah diselesaikan"}
	default:
		return &httpError{http.StatusInternalServerError, "Terjadi kesalahan pada server"}
	}
}

// NewInvalidRequestError creates a 400 error with the given detail
func NewInvalidRequestError(detail string) error {
	return &httpError{http.StatusBadRequest, detail}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Terjadi kesalahan pada server"}
}
