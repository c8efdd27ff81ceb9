// Package telehealth orchestrates enrollment and verification inside bounded
// consultation sessions, issuing and expiring gesture challenges.
package telehealth

import "time"

// SessionType categorizes the consultation.
type SessionType string

const (
	SessionConsultation SessionType = "consultation"
	SessionFollowup     SessionType = "followup"
	SessionPrescription SessionType = "prescription"
	SessionEmergency    SessionType = "emergency"
)

// ValidSessionType reports whether t is a known session type.
func ValidSessionType(t SessionType) bool {
	switch t {
	case SessionConsultation, SessionFollowup, SessionPrescription, SessionEmergency:
		return true
	}
	return false
}

// VerificationStatus is the session's position in the verification state
// machine. Verified is terminal; failed sessions may retry.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusFailed   VerificationStatus = "failed"
	StatusExpired  VerificationStatus = "expired"
)

// Session is one active telehealth consultation. Owned exclusively by the
// Manager for its lifetime.
type Session struct {
	SessionID          string             `json:"sessionId"`
	PatientID          string             `json:"patientId"`
	ProviderID         string             `json:"providerId"`
	SessionType        SessionType        `json:"sessionType"`
	CreatedAt          time.Time          `json:"createdAt"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// Clone returns a copy so callers never alias Manager-owned state.
func (s *Session) Clone() *Session {
	cp := *s
	return &cp
}
