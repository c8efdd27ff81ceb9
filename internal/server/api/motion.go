package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/gesture"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/motion"
)

// MotionHandler exposes standalone motion analysis and challenge generation,
// independent of any session.
type MotionHandler struct {
	challengeTTL time.Duration
}

// NewMotionHandler creates a new MotionHandler. A non-positive ttl falls back
// to the default challenge expiry.
func NewMotionHandler(challengeTTL time.Duration) *MotionHandler {
	return &MotionHandler{challengeTTL: challengeTTL}
}

// Analyze handles POST /api/motion/analyze.
func (h *MotionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		MotionSequence *landmark.MotionSequence `json:"motionSequence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MotionSequence == nil {
		writeError(w, http.StatusBadRequest, "motionSequence is required")
		return
	}
	if err := req.MotionSequence.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	features, err := motion.Extract(req.MotionSequence)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": gesture.Analyze(req.MotionSequence),
		"quality":  motion.ValidateQuality(features),
	})
}

// Challenge handles GET /api/motion/challenge.
func (h *MotionHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"challenge": gesture.NewChallenge(h.challengeTTL),
	})
}
