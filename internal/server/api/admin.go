package api

import (
	"net/http"
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

// StatsHandler reports session statistics for monitoring.
type StatsHandler struct {
	sessions *telehealth.Manager
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(sessions *telehealth.Manager) *StatsHandler {
	return &StatsHandler{sessions: sessions}
}

// ServeHTTP handles GET /api/admin/stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"stats":     h.sessions.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
