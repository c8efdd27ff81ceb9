// Package identity stores enrolled biometric profiles and scores fresh
// signing attempts against them to produce verify/reject decisions.
package identity

import (
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

// PatternFeatures is the subset of motion features persisted per enrolled
// pattern. Raw landmark data never leaves the extraction path.
type PatternFeatures struct {
	AverageVelocity      float64             `json:"averageVelocity"`
	MaxVelocity          float64             `json:"maxVelocity"`
	MotionSmoothness     float64             `json:"motionSmoothness"`
	AverageFingerSpread  float64             `json:"averageFingerSpread"`
	AverageWristMovement float64             `json:"averageWristMovement"`
	DominantHand         landmark.Handedness `json:"dominantHand"`
}

// SignaturePattern is one enrolled signing sample.
type SignaturePattern struct {
	PatternID  string          `json:"patternId"`
	SignType   string          `json:"signType"`
	Features   PatternFeatures `json:"features"`
	CapturedAt time.Time       `json:"capturedAt"`
}

// Profile is a user's enrolled biometric identity.
type Profile struct {
	UserID            string              `json:"userId"`
	EnrollmentDate    time.Time           `json:"enrollmentDate"`
	SignaturePatterns []SignaturePattern  `json:"signaturePatterns"`
	DominantHand      landmark.Handedness `json:"dominantHand"`
}

// Clone returns a deep copy so callers can never mutate stored state.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.SignaturePatterns = make([]SignaturePattern, len(p.SignaturePatterns))
	copy(cp.SignaturePatterns, p.SignaturePatterns)
	return &cp
}

// ProfileInfo is the externally visible projection of a profile. It omits
// the stored feature vectors for privacy.
type ProfileInfo struct {
	UserID           string              `json:"userId"`
	EnrollmentDate   time.Time           `json:"enrollmentDate"`
	EnrolledPatterns int                 `json:"enrolledPatterns"`
	DominantHand     landmark.Handedness `json:"dominantHand"`
	LastPatternDate  *time.Time          `json:"lastPatternDate"`
}

// Info builds the privacy-safe projection.
func (p *Profile) Info() *ProfileInfo {
	info := &ProfileInfo{
		UserID:           p.UserID,
		EnrollmentDate:   p.EnrollmentDate,
		EnrolledPatterns: len(p.SignaturePatterns),
		DominantHand:     p.DominantHand,
	}
	if n := len(p.SignaturePatterns); n > 0 {
		last := p.SignaturePatterns[n-1].CapturedAt
		info.LastPatternDate = &last
	}
	return info
}
