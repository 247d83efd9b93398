package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/mamae10/webhook-relay/internal/domain"
	"github.com/mamae10/webhook-relay/internal/handler"
	"github.com/mamae10/webhook-relay/internal/logging"
)

// Recovery catches panics and returns a 500 error instead of crashing the server.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger := logging.FromContext(r.Context())
				logger.Error().
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("Recovered from panic")
				handler.JSON(w, http.StatusInternalServerError, domain.Result{
					Success: false,
					Message: "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
