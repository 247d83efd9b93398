package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mamae10/webhook-relay/internal/domain"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Int("status", status).Msg("Failed to encode JSON response")
		}
	}
}

// Error writes a failed Result, using AppError status codes when available,
// and returns the status written.
func Error(w http.ResponseWriter, err error) int {
	if appErr, ok := domain.AsAppError(err); ok && appErr.Code < http.StatusInternalServerError {
		JSON(w, appErr.Code, domain.Result{Success: false, Message: appErr.Message})
		return appErr.Code
	}
	log.Error().Err(err).Msg("Unhandled error")
	JSON(w, http.StatusInternalServerError, domain.Result{Success: false, Message: MsgInternalError})
	return http.StatusInternalServerError
}
