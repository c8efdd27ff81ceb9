package identity

import (
	"math"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/motion"
)

// Per-feature similarity tolerances. Lower tolerance means the feature must
// be closer to count as similar.
const (
	velocityTolerance     = 0.5
	maxVelocityTolerance  = 0.5
	smoothnessTolerance   = 0.3
	fingerSpreadTolerance = 0.2
	wristTolerance        = 0.3
)

// Per-feature weights. These sum to 1.0.
const (
	velocityWeight     = 0.25
	maxVelocityWeight  = 0.15
	smoothnessWeight   = 0.25
	fingerSpreadWeight = 0.20
	wristWeight        = 0.15
)

// matchScore compares a fresh attempt against one enrolled pattern. Hand
// dominance mismatch short-circuits to zero regardless of feature closeness.
func matchScore(attempt motion.Features, enrolled PatternFeatures) float64 {
	if attempt.DominantHand != enrolled.DominantHand {
		return 0
	}

	return velocityWeight*similarity(attempt.AverageVelocity, enrolled.AverageVelocity, velocityTolerance) +
		maxVelocityWeight*similarity(attempt.MaxVelocity, enrolled.MaxVelocity, maxVelocityTolerance) +
		smoothnessWeight*similarity(attempt.MotionSmoothness, enrolled.MotionSmoothness, smoothnessTolerance) +
		fingerSpreadWeight*similarity(attempt.AverageFingerSpread, enrolled.AverageFingerSpread, fingerSpreadTolerance) +
		wristWeight*similarity(attempt.AverageWristMovement, enrolled.AverageWristMovement, wristTolerance)
}

// similarity maps the relative difference of two values into [0,1] under the
// given tolerance. Identical values (including both zero) score 1.
func similarity(a, b, tolerance float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	maxVal := math.Max(math.Abs(a), math.Abs(b))
	if maxVal == 0 {
		return 1
	}

	diff := math.Abs(a-b) / maxVal
	return math.Max(0, 1-diff/tolerance)
}

// Confidence labels the strength of a verified match.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func confidenceLabel(score float64) Confidence {
	switch {
	case score >= 0.9:
		return ConfidenceHigh
	case score >= 0.8:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
