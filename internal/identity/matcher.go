package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/motion"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/syncutil"
)

// Defaults for the tunable matcher parameters.
const (
	DefaultVerificationThreshold = 0.75
	DefaultMinEnrollmentQuality  = 0.5

	// MaxPatternsPerProfile bounds profile growth; the oldest pattern is
	// evicted once the cap is reached.
	MaxPatternsPerProfile = 20

	// DefaultSignType is recorded when the caller does not name the sign.
	DefaultSignType = "verification_sign"
)

// ErrNotEnrolled is returned when verification is attempted for a user with
// no profile or no enrolled patterns.
var ErrNotEnrolled = errors.New("user not enrolled")

// QualityError reports a capture rejected by the quality validator. The score
// and issue list are preserved so callers can tell the user what to fix.
type QualityError struct {
	Op           string
	Issues       []string
	QualityScore float64
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("motion quality insufficient for %s: %s", e.Op, strings.Join(e.Issues, "; "))
}

// EnrollmentResult reports a successful enrollment.
type EnrollmentResult struct {
	PatternID        string  `json:"patternId"`
	QualityScore     float64 `json:"qualityScore"`
	EnrolledPatterns int     `json:"enrolledPatterns"`
}

// VerificationResult reports the outcome of a verification attempt.
// MatchedPatternID is withheld on non-matches so callers cannot learn which
// pattern nearly matched; Confidence is set only when verified.
type VerificationResult struct {
	Verified         bool       `json:"verified"`
	MatchScore       float64    `json:"matchScore"`
	MatchedPatternID string     `json:"matchedPatternId,omitempty"`
	QualityScore     float64    `json:"qualityScore"`
	Confidence       Confidence `json:"confidence,omitempty"`
}

// Config holds the matcher dependencies and tunables.
type Config struct {
	Store ProfileStore

	// VerificationThreshold is the minimum best-pattern score for a verify
	// decision. Defaults to DefaultVerificationThreshold when zero.
	VerificationThreshold float64

	// MinEnrollmentQuality is the minimum quality score accepted at
	// enrollment, on top of the validator's hard thresholds. Defaults to
	// DefaultMinEnrollmentQuality when zero.
	MinEnrollmentQuality float64
}

// Matcher owns the enrolled profiles. All mutation goes through its
// operations; per-user read-modify-write cycles are serialized so concurrent
// enrollments cannot lose patterns, while different users never block each
// other.
type Matcher struct {
	store      ProfileStore
	threshold  float64
	minQuality float64
	locks      syncutil.KeyedMutex
}

// NewMatcher creates a Matcher with the given configuration.
func NewMatcher(cfg Config) *Matcher {
	if cfg.VerificationThreshold == 0 {
		cfg.VerificationThreshold = DefaultVerificationThreshold
	}
	if cfg.MinEnrollmentQuality == 0 {
		cfg.MinEnrollmentQuality = DefaultMinEnrollmentQuality
	}
	return &Matcher{
		store:      cfg.Store,
		threshold:  cfg.VerificationThreshold,
		minQuality: cfg.MinEnrollmentQuality,
	}
}

// Enroll extracts and validates features from the sequence and appends a new
// signature pattern to the user's profile, creating the profile on first
// enrollment. Stored state is untouched on any failure path.
func (m *Matcher) Enroll(userID string, seq *landmark.MotionSequence, signType string) (*EnrollmentResult, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	features, err := motion.Extract(seq)
	if err != nil {
		return nil, err
	}

	quality := motion.ValidateQuality(features)
	if !quality.IsValid {
		return nil, &QualityError{Op: "enrollment", Issues: quality.Issues, QualityScore: quality.QualityScore}
	}
	if quality.QualityScore < m.minQuality {
		return nil, &QualityError{
			Op:           "enrollment",
			Issues:       []string{fmt.Sprintf("quality score %.2f below enrollment minimum %.2f", quality.QualityScore, m.minQuality)},
			QualityScore: quality.QualityScore,
		}
	}

	if signType == "" {
		signType = DefaultSignType
	}

	unlock := m.locks.Lock(userID)
	defer unlock()

	now := time.Now().UTC()
	profile, err := m.store.Get(userID)
	if errors.Is(err, ErrProfileNotFound) {
		profile = &Profile{
			UserID:         userID,
			EnrollmentDate: now,
			DominantHand:   features.DominantHand,
		}
	} else if err != nil {
		return nil, err
	}

	pattern := SignaturePattern{
		PatternID: uuid.NewString(),
		SignType:  signType,
		Features: PatternFeatures{
			AverageVelocity:      features.AverageVelocity,
			MaxVelocity:          features.MaxVelocity,
			MotionSmoothness:     features.MotionSmoothness,
			AverageFingerSpread:  features.AverageFingerSpread,
			AverageWristMovement: features.AverageWristMovement,
			DominantHand:         features.DominantHand,
		},
		CapturedAt: now,
	}
	profile.SignaturePatterns = append(profile.SignaturePatterns, pattern)
	if len(profile.SignaturePatterns) > MaxPatternsPerProfile {
		profile.SignaturePatterns = profile.SignaturePatterns[len(profile.SignaturePatterns)-MaxPatternsPerProfile:]
	}

	if err := m.store.Save(profile); err != nil {
		return nil, err
	}

	return &EnrollmentResult{
		PatternID:        pattern.PatternID,
		QualityScore:     quality.QualityScore,
		EnrolledPatterns: len(profile.SignaturePatterns),
	}, nil
}

// Verify scores the attempt against every enrolled pattern and keeps the
// best. The decision compares the best score against the verification
// threshold.
func (m *Matcher) Verify(userID string, seq *landmark.MotionSequence) (*VerificationResult, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}

	profile, err := m.store.Get(userID)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, ErrNotEnrolled
	} else if err != nil {
		return nil, err
	}
	if len(profile.SignaturePatterns) == 0 {
		return nil, ErrNotEnrolled
	}

	features, err := motion.Extract(seq)
	if err != nil {
		return nil, err
	}
	quality := motion.ValidateQuality(features)
	if !quality.IsValid {
		return nil, &QualityError{Op: "verification", Issues: quality.Issues, QualityScore: quality.QualityScore}
	}

	var bestScore float64
	var bestPatternID string
	for _, pattern := range profile.SignaturePatterns {
		if score := matchScore(features, pattern.Features); score > bestScore {
			bestScore = score
			bestPatternID = pattern.PatternID
		}
	}

	verified := bestScore >= m.threshold
	result := &VerificationResult{
		Verified:     verified,
		MatchScore:   bestScore,
		QualityScore: quality.QualityScore,
	}
	if verified {
		result.MatchedPatternID = bestPatternID
		result.Confidence = confidenceLabel(bestScore)
	}
	return result, nil
}

// GetProfile returns the privacy-safe projection of a user's profile.
func (m *Matcher) GetProfile(userID string) (*ProfileInfo, error) {
	profile, err := m.store.Get(userID)
	if err != nil {
		return nil, err
	}
	return profile.Info(), nil
}

// DeleteProfile hard-deletes a user's biometric data. Idempotent; reports
// whether anything was removed.
func (m *Matcher) DeleteProfile(userID string) (bool, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()
	return m.store.Delete(userID)
}
