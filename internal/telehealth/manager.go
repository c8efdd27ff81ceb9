package telehealth

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/gesture"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/syncutil"
)

// Session lifecycle errors. All are recoverable: the caller re-initializes,
// refreshes the challenge, or retries.
var (
	ErrNoPendingChallenge = errors.New("no pending verification challenge")
	ErrChallengeExpired   = errors.New("verification challenge expired")
	ErrInvalidSessionType = errors.New("invalid session type")
)

// DefaultSessionTTL bounds how long an unfinished session may linger before
// the sweeper removes it.
const DefaultSessionTTL = 30 * time.Minute

// Config holds the Manager dependencies and tunables.
type Config struct {
	Store   SessionStore
	Matcher *identity.Matcher

	// ChallengeTTL controls challenge expiry. Defaults to
	// gesture.DefaultChallengeTTL when zero.
	ChallengeTTL time.Duration

	// SessionTTL controls sweeper eviction. Defaults to DefaultSessionTTL
	// when zero.
	SessionTTL time.Duration
}

// Manager is the session state machine. It exclusively owns session and
// challenge state; per-session operations are serialized while distinct
// sessions proceed concurrently.
type Manager struct {
	store        SessionStore
	matcher      *identity.Matcher
	challengeTTL time.Duration
	sessionTTL   time.Duration
	locks        syncutil.KeyedMutex

	// now is indirected for expiry tests.
	now func() time.Time
}

// NewManager creates a Manager with the given configuration.
func NewManager(cfg Config) *Manager {
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = gesture.DefaultChallengeTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &Manager{
		store:        cfg.Store,
		matcher:      cfg.Matcher,
		challengeTTL: cfg.ChallengeTTL,
		sessionTTL:   cfg.SessionTTL,
		now:          time.Now,
	}
}

// InitResult reports a newly initialized session together with its first
// challenge and whether the patient still needs to enroll.
type InitResult struct {
	SessionID          string            `json:"sessionId"`
	RequiresEnrollment bool              `json:"requiresEnrollment"`
	Challenge          gesture.Challenge `json:"challenge"`
	Session            *Session          `json:"session"`
	Message            string            `json:"message"`
}

// InitializeSession creates a pending session for a consultation and attaches
// a fresh verification challenge.
func (m *Manager) InitializeSession(patientID, providerID string, sessionType SessionType) (*InitResult, error) {
	if sessionType == "" {
		sessionType = SessionConsultation
	}
	if !ValidSessionType(sessionType) {
		return nil, ErrInvalidSessionType
	}

	session := &Session{
		SessionID:          uuid.NewString(),
		PatientID:          patientID,
		ProviderID:         providerID,
		SessionType:        sessionType,
		CreatedAt:          m.now().UTC(),
		VerificationStatus: StatusPending,
	}
	if err := m.store.Save(session); err != nil {
		return nil, err
	}

	challenge := gesture.NewChallenge(m.challengeTTL)
	m.store.SetChallenge(session.SessionID, challenge)

	requiresEnrollment := !m.patientEnrolled(patientID)
	message := "Please perform the verification gesture"
	if requiresEnrollment {
		message = "Please enroll your ASL signature before verification"
	}

	return &InitResult{
		SessionID:          session.SessionID,
		RequiresEnrollment: requiresEnrollment,
		Challenge:          challenge,
		Session:            session,
		Message:            message,
	}, nil
}

// EnrollOutcome reports an in-session enrollment plus a gesture diagnostic
// for caller feedback.
type EnrollOutcome struct {
	Enrollment *identity.EnrollmentResult `json:"enrollment"`
	Analysis   gesture.Analysis           `json:"gestureAnalysis"`
	Message    string                     `json:"message"`
}

// EnrollInSession enrolls the session's patient with the captured sequence.
// Session status is not changed by enrollment.
func (m *Manager) EnrollInSession(sessionID string, seq *landmark.MotionSequence) (*EnrollOutcome, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	session, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	enrollment, err := m.matcher.Enroll(session.PatientID, seq, "telehealth_verification")
	if err != nil {
		return nil, err
	}

	return &EnrollOutcome{
		Enrollment: enrollment,
		Analysis:   gesture.Analyze(seq),
		Message:    "Biometric enrollment successful. You can now verify your identity.",
	}, nil
}

// VerifyOutcome reports an in-session verification attempt.
type VerifyOutcome struct {
	Result   *identity.VerificationResult `json:"verification"`
	Analysis gesture.Analysis             `json:"gestureAnalysis"`
	Message  string                       `json:"message"`
}

// VerifyInSession verifies the patient against the pending challenge. An
// expired challenge is removed as a side effect, so a retry surfaces
// ErrNoPendingChallenge until the caller refreshes. A successful verification
// consumes the challenge; a failed one keeps it live for retry. Matcher
// errors (not enrolled, bad input, poor quality) leave the session status
// untouched.
func (m *Manager) VerifyInSession(sessionID string, seq *landmark.MotionSequence) (*VerifyOutcome, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	session, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	challenge, ok := m.store.Challenge(sessionID)
	if !ok {
		return nil, ErrNoPendingChallenge
	}
	if challenge.Expired(m.now()) {
		m.store.DeleteChallenge(sessionID)
		return nil, ErrChallengeExpired
	}

	result, err := m.matcher.Verify(session.PatientID, seq)
	if err != nil {
		return nil, err
	}

	if result.Verified {
		session.VerificationStatus = StatusVerified
		m.store.DeleteChallenge(sessionID)
	} else {
		session.VerificationStatus = StatusFailed
	}
	if err := m.store.Save(session); err != nil {
		return nil, err
	}

	message := "Verification failed. Please try again."
	if result.Verified {
		message = "Identity verified successfully"
	}

	return &VerifyOutcome{
		Result:   result,
		Analysis: gesture.Analyze(seq),
		Message:  message,
	}, nil
}

// RefreshChallenge replaces any existing challenge with a new one.
func (m *Manager) RefreshChallenge(sessionID string) (*gesture.Challenge, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	if _, err := m.store.Get(sessionID); err != nil {
		return nil, err
	}

	challenge := gesture.NewChallenge(m.challengeTTL)
	m.store.SetChallenge(sessionID, challenge)
	return &challenge, nil
}

// Status is the read-only session projection.
type Status struct {
	Session             *Session `json:"session"`
	PatientEnrolled     bool     `json:"patientEnrolled"`
	HasPendingChallenge bool     `json:"hasPendingChallenge"`
	ChallengeExpired    bool     `json:"challengeExpired"`
}

// GetStatus reports the session and challenge state without mutating either.
func (m *Manager) GetStatus(sessionID string) (*Status, error) {
	session, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Session:         session,
		PatientEnrolled: m.patientEnrolled(session.PatientID),
	}
	if challenge, ok := m.store.Challenge(sessionID); ok {
		status.HasPendingChallenge = true
		status.ChallengeExpired = challenge.Expired(m.now())
	}
	return status, nil
}

// EndSession removes the session and its challenge. Idempotent; reports
// whether a session was removed.
func (m *Manager) EndSession(sessionID string) bool {
	unlock := m.locks.Lock(sessionID)
	defer unlock()
	return m.store.Delete(sessionID)
}

// DeletePatientData erases the patient's biometric profile and forgets every
// session referencing the patient. Reports whether biometrics existed.
func (m *Manager) DeletePatientData(patientID string) (bool, error) {
	deleted, err := m.matcher.DeleteProfile(patientID)
	if err != nil {
		return false, err
	}

	for _, session := range m.store.List() {
		if session.PatientID == patientID {
			m.store.Delete(session.SessionID)
		}
	}
	return deleted, nil
}

// Stats summarizes active sessions for monitoring.
type Stats struct {
	TotalActiveSessions  int `json:"totalActiveSessions"`
	PendingVerifications int `json:"pendingVerifications"`
	VerifiedSessions     int `json:"verifiedSessions"`
	FailedVerifications  int `json:"failedVerifications"`
	PendingChallenges    int `json:"pendingChallenges"`
}

// Stats counts sessions by verification status.
func (m *Manager) Stats() Stats {
	var stats Stats
	for _, session := range m.store.List() {
		stats.TotalActiveSessions++
		switch session.VerificationStatus {
		case StatusPending:
			stats.PendingVerifications++
		case StatusVerified:
			stats.VerifiedSessions++
		case StatusFailed:
			stats.FailedVerifications++
		}
		if _, ok := m.store.Challenge(session.SessionID); ok {
			stats.PendingChallenges++
		}
	}
	return stats
}

func (m *Manager) patientEnrolled(patientID string) bool {
	info, err := m.matcher.GetProfile(patientID)
	return err == nil && info.EnrolledPatterns > 0
}
