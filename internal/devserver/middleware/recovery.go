package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mangestic/ctfctl/internal/devserver/apierr"
	"github.com/mangestic/ctfctl/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics surface as the contract's {detail} failure shape.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
