package api

import (
	"net/http"
	"strings"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

// ProfileHandler handles biometric profile lookups and privacy deletions.
type ProfileHandler struct {
	matcher  *identity.Matcher
	sessions *telehealth.Manager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(matcher *identity.Matcher, sessions *telehealth.Manager) *ProfileHandler {
	return &ProfileHandler{matcher: matcher, sessions: sessions}
}

// ServeHTTP routes profile requests.
// Expected path: /api/biometrics/profile/{userId}
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimPrefix(r.URL.Path, "/api/biometrics/profile")
	userID = strings.TrimPrefix(userID, "/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, userID)
	case http.MethodDelete:
		h.delete(w, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, userID string) {
	info, err := h.matcher.GetProfile(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": info,
	})
}

// delete cascades through the session manager so sessions and challenges
// referencing the patient are forgotten along with the biometrics.
func (h *ProfileHandler) delete(w http.ResponseWriter, userID string) {
	deleted, err := h.sessions.DeletePatientData(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"biometricsDeleted": deleted,
		"message":           "All patient biometric data has been deleted",
	})
}
