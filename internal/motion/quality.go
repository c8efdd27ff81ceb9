package motion

import "math"

// Quality rejection thresholds.
const (
	MinConfidence = 0.7
	MinFrameCount = 10
	MinDuration   = 0.5 // seconds
	MinSmoothness = 0.3
)

// Quality score weights and caps.
const (
	confidenceWeight = 0.30
	smoothnessWeight = 0.25
	durationWeight   = 0.20
	frameCountWeight = 0.25

	durationCap   = 2.0 // seconds
	frameCountCap = 30.0
)

// QualityResult reports whether a capture is usable and why not. The score is
// computed even for rejected captures so callers can give "almost there"
// feedback.
type QualityResult struct {
	IsValid      bool     `json:"isValid"`
	QualityScore float64  `json:"qualityScore"`
	Issues       []string `json:"issues"`
}

// ValidateQuality checks extracted features against the minimum capture
// quality thresholds. Pure function: it neither mutates nor stores anything.
func ValidateQuality(f Features) QualityResult {
	var issues []string

	if f.AverageConfidence < MinConfidence {
		issues = append(issues, "Low hand detection confidence - ensure good lighting")
	}
	if f.FrameCount < MinFrameCount {
		issues = append(issues, "Insufficient frames captured - sign for at least 1 second")
	}
	if f.FrameDuration < MinDuration {
		issues = append(issues, "Motion too brief - perform sign more slowly")
	}
	if f.MotionSmoothness < MinSmoothness {
		issues = append(issues, "Motion too erratic - try to sign more smoothly")
	}

	return QualityResult{
		IsValid:      len(issues) == 0,
		QualityScore: QualityScore(f),
		Issues:       issues,
	}
}

// QualityScore computes the weighted capture quality in [0,1]. Duration and
// frame count saturate at 2 seconds and 30 frames respectively.
func QualityScore(f Features) float64 {
	confidenceScore := f.AverageConfidence
	smoothnessScore := f.MotionSmoothness
	durationScore := math.Min(1, f.FrameDuration/durationCap)
	frameCountScore := math.Min(1, float64(f.FrameCount)/frameCountCap)

	return confidenceWeight*confidenceScore +
		smoothnessWeight*smoothnessScore +
		durationWeight*durationScore +
		frameCountWeight*frameCountScore
}
