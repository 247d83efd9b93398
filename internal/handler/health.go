package handler

import (
	"net/http"
	"time"

	"github.com/mamae10/webhook-relay/internal/domain"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	version string
	started time.Time
	secured map[domain.Provider]bool
}

// NewHealthHandler creates a new HealthHandler. secrets holds the inbound
// webhook secret per provider; only their presence is reported.
func NewHealthHandler(version string, secrets map[domain.Provider]string) *HealthHandler {
	secured := make(map[domain.Provider]bool, len(domain.Providers()))
	for _, p := range domain.Providers() {
		secured[p] = secrets[p] != ""
	}
	return &HealthHandler{version: version, started: time.Now(), secured: secured}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":                "ok",
		"version":               h.version,
		"uptimeSeconds":         int64(time.Since(h.started).Seconds()),
		"signatureVerification": h.secured,
	})
}
