// Package api provides HTTP API handlers for the ASL biometric verification
// service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/motion"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

type errorResponse struct {
	Error        string   `json:"error"`
	Issues       []string `json:"qualityIssues,omitempty"`
	QualityScore *float64 `json:"qualityScore,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps core error kinds to HTTP statuses. Quality rejections
// keep their issue list and score so the client can coach a re-capture.
func writeDomainError(w http.ResponseWriter, err error) {
	var qualityErr *identity.QualityError
	if errors.As(err, &qualityErr) {
		score := qualityErr.QualityScore
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:        qualityErr.Error(),
			Issues:       qualityErr.Issues,
			QualityScore: &score,
		})
		return
	}

	switch {
	case errors.Is(err, landmark.ErrInvalidSequence),
		errors.Is(err, motion.ErrInsufficientFrames),
		errors.Is(err, telehealth.ErrInvalidSessionType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, telehealth.ErrSessionNotFound),
		errors.Is(err, identity.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, identity.ErrNotEnrolled),
		errors.Is(err, telehealth.ErrNoPendingChallenge):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, telehealth.ErrChallengeExpired):
		writeError(w, http.StatusGone, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
