// Package motion extracts kinematic and geometric features from hand motion
// sequences and validates capture quality before enrollment or matching.
package motion

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

// ErrInsufficientFrames is returned when a sequence has too few frames to
// derive any frame-to-frame velocity.
var ErrInsufficientFrames = errors.New("insufficient frames for feature extraction")

// minTimeDelta clamps the per-pair time delta, in seconds. Frames that share
// a timestamp (or arrive out of order) would otherwise divide by zero.
const minTimeDelta = 0.001

// fingertips are the five landmark indices averaged into the velocity signal.
var fingertips = [5]int{
	landmark.ThumbTip,
	landmark.IndexTip,
	landmark.MiddleTip,
	landmark.RingTip,
	landmark.PinkyTip,
}

// Features is the fixed-size numeric summary of a motion sequence. Velocities
// are in normalized frame units per second; smoothness is the inverse-variance
// mapping 1/(1+var), so steady motion scores near 1 and erratic motion near 0.
type Features struct {
	AverageVelocity      float64             `json:"averageVelocity"`
	MaxVelocity          float64             `json:"maxVelocity"`
	MotionSmoothness     float64             `json:"motionSmoothness"`
	AverageFingerSpread  float64             `json:"averageFingerSpread"`
	AverageWristMovement float64             `json:"averageWristMovement"`
	FrameDuration        float64             `json:"frameDuration"`
	FrameCount           int                 `json:"frameCount"`
	DominantHand         landmark.Handedness `json:"dominantHand"`
	AverageConfidence    float64             `json:"averageConfidence"`
}

// Extract computes motion features from a sequence. It requires at least two
// frames; callers enforcing the wire shape already guarantee five or more.
func Extract(seq *landmark.MotionSequence) (Features, error) {
	frames := seq.Frames
	if len(frames) < 2 {
		return Features{}, ErrInsufficientFrames
	}

	velocities := make([]float64, 0, len(frames)-1)
	spreads := make([]float64, 0, len(frames)-1)
	wristMovements := make([]float64, 0, len(frames)-1)

	for i := 1; i < len(frames); i++ {
		cur := &frames[i]
		prev := &frames[i-1]

		dt := float64(cur.Timestamp-prev.Timestamp) / 1000
		if dt < minTimeDelta {
			dt = minTimeDelta
		}

		var frameVelocity float64
		for _, tip := range fingertips {
			frameVelocity += landmark.Distance(cur.Landmarks[tip], prev.Landmarks[tip]) / dt
		}
		velocities = append(velocities, frameVelocity/float64(len(fingertips)))

		spreads = append(spreads, landmark.Distance(cur.Landmarks[landmark.ThumbTip], cur.Landmarks[landmark.PinkyTip]))

		wristMovements = append(wristMovements, landmark.Distance(cur.Landmarks[landmark.Wrist], prev.Landmarks[landmark.Wrist])/dt)
	}

	confidences := make([]float64, len(frames))
	for i := range frames {
		confidences[i] = frames[i].Confidence
	}

	avgVelocity := stat.Mean(velocities, nil)

	// Population variance of the velocity signal; stat.Variance would apply
	// the n-1 Bessel correction and shift scores.
	variance := stat.MomentAbout(2, velocities, avgVelocity, nil)

	return Features{
		AverageVelocity:      avgVelocity,
		MaxVelocity:          floats.Max(velocities),
		MotionSmoothness:     1 / (1 + variance),
		AverageFingerSpread:  stat.Mean(spreads, nil),
		AverageWristMovement: stat.Mean(wristMovements, nil),
		FrameDuration:        float64(seq.CaptureEndTime-seq.CaptureStartTime) / 1000,
		FrameCount:           len(frames),
		DominantHand:         frames[0].Handedness,
		AverageConfidence:    stat.Mean(confidences, nil),
	}, nil
}
