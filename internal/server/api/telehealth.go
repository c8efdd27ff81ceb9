package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/metrics"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/telehealth"
)

// TelehealthHandler handles HTTP requests for telehealth verification
// sessions.
type TelehealthHandler struct {
	sessions *telehealth.Manager
	metrics  *metrics.Metrics
}

// NewTelehealthHandler creates a new TelehealthHandler.
func NewTelehealthHandler(sessions *telehealth.Manager, m *metrics.Metrics) *TelehealthHandler {
	return &TelehealthHandler{sessions: sessions, metrics: m}
}

// ServeHTTP routes session requests.
// Expected paths: /api/telehealth/session and
// /api/telehealth/session/{id}[/enroll|/verify|/challenge]
func (h *TelehealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/telehealth/session")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.initialize(w, r)
		return
	}

	id, action, _ := strings.Cut(path, "/")
	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.status(w, r, id)
		case http.MethodDelete:
			h.end(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "enroll":
		h.post(w, r, id, h.enroll)
	case "verify":
		h.post(w, r, id, h.verify)
	case "challenge":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.refreshChallenge(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Unknown session action")
	}
}

func (h *TelehealthHandler) post(w http.ResponseWriter, r *http.Request, id string, fn func(http.ResponseWriter, string, *landmark.MotionSequence)) {
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
	fn(w, id, req.MotionSequence)
}

type initSessionRequest struct {
	PatientID   string                 `json:"patientId"`
	ProviderID  string                 `json:"providerId"`
	SessionType telehealth.SessionType `json:"sessionType"`
}

func (h *TelehealthHandler) initialize(w http.ResponseWriter, r *http.Request) {
	var req initSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PatientID == "" || req.ProviderID == "" {
		writeError(w, http.StatusBadRequest, "patientId and providerId are required")
		return
	}

	result, err := h.sessions.InitializeSession(req.PatientID, req.ProviderID, req.SessionType)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.SessionsInitialized.Inc()
	writeJSON(w, http.StatusCreated, result)
}

func (h *TelehealthHandler) status(w http.ResponseWriter, r *http.Request, id string) {
	status, err := h.sessions.GetStatus(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *TelehealthHandler) enroll(w http.ResponseWriter, id string, seq *landmark.MotionSequence) {
	outcome, err := h.sessions.EnrollInSession(id, seq)
	if err != nil {
		var qualityErr *identity.QualityError
		if errors.As(err, &qualityErr) {
			h.metrics.Enrollments.WithLabelValues("rejected").Inc()
		}
		writeDomainError(w, err)
		return
	}

	h.metrics.Enrollments.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, outcome)
}

func (h *TelehealthHandler) verify(w http.ResponseWriter, id string, seq *landmark.MotionSequence) {
	outcome, err := h.sessions.VerifyInSession(id, seq)
	if err != nil {
		h.metrics.Verifications.WithLabelValues("rejected").Inc()
		writeDomainError(w, err)
		return
	}

	if outcome.Result.Verified {
		h.metrics.Verifications.WithLabelValues("verified").Inc()
	} else {
		h.metrics.Verifications.WithLabelValues("failed").Inc()
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *TelehealthHandler) refreshChallenge(w http.ResponseWriter, r *http.Request, id string) {
	challenge, err := h.sessions.RefreshChallenge(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"challenge": challenge,
	})
}

func (h *TelehealthHandler) end(w http.ResponseWriter, r *http.Request, id string) {
	ended := h.sessions.EndSession(id)

	message := "Session not found"
	if ended {
		message = "Session ended"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": ended,
		"message": message,
	})
}
