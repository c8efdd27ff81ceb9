// Package testutil builds synthetic hand motion sequences for tests. The
// generated landmarks follow the MediaPipe index layout and keep x and y
// inside the normalized frame so sequences pass wire validation.
package testutil

import (
	"github.com/google/uuid"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

// frameInterval is the timestamp spacing between generated frames, in ms.
const frameInterval = 50

// OpenHand returns a hand pose with all five fingers extended, palm up.
func OpenHand() []landmark.Landmark {
	return hand(true)
}

// Fist returns a hand pose with all five fingers curled.
func Fist() []landmark.Landmark {
	return hand(false)
}

// hand lays out a schematic right hand: wrist at the bottom, fingers
// stacked upward (decreasing y). Open fingers place the tip well past the
// PIP joint; curled fingers pull the tip back next to the MCP.
func hand(open bool) []landmark.Landmark {
	lm := make([]landmark.Landmark, landmark.NumLandmarks)
	lm[landmark.Wrist] = landmark.Landmark{X: 0.5, Y: 0.8}

	lm[landmark.ThumbCMC] = landmark.Landmark{X: 0.42, Y: 0.75}
	lm[landmark.ThumbMCP] = landmark.Landmark{X: 0.4, Y: 0.72}
	if open {
		lm[landmark.ThumbIP] = landmark.Landmark{X: 0.37, Y: 0.67}
		lm[landmark.ThumbTip] = landmark.Landmark{X: 0.34, Y: 0.62}
	} else {
		lm[landmark.ThumbIP] = landmark.Landmark{X: 0.42, Y: 0.73}
		lm[landmark.ThumbTip] = landmark.Landmark{X: 0.43, Y: 0.74}
	}

	fingers := []struct {
		mcp int
		x   float64
	}{
		{landmark.IndexMCP, 0.44},
		{landmark.MiddleMCP, 0.48},
		{landmark.RingMCP, 0.52},
		{landmark.PinkyMCP, 0.56},
	}
	for _, f := range fingers {
		lm[f.mcp] = landmark.Landmark{X: f.x, Y: 0.6}
		lm[f.mcp+1] = landmark.Landmark{X: f.x, Y: 0.55}
		if open {
			lm[f.mcp+2] = landmark.Landmark{X: f.x, Y: 0.48}
			lm[f.mcp+3] = landmark.Landmark{X: f.x, Y: 0.4}
		} else {
			lm[f.mcp+2] = landmark.Landmark{X: f.x, Y: 0.58}
			lm[f.mcp+3] = landmark.Landmark{X: f.x, Y: 0.57}
		}
	}
	return lm
}

// Translate returns a copy of lms shifted by the given offsets.
func Translate(lms []landmark.Landmark, dx, dy, dz float64) []landmark.Landmark {
	out := make([]landmark.Landmark, len(lms))
	for i, lm := range lms {
		out[i] = landmark.Landmark{X: lm.X + dx, Y: lm.Y + dy, Z: lm.Z + dz}
	}
	return out
}

// Frame builds a single hand frame.
func Frame(ts int64, hand landmark.Handedness, confidence float64, lms []landmark.Landmark) landmark.HandFrame {
	return landmark.HandFrame{
		Timestamp:  ts,
		Handedness: hand,
		Landmarks:  lms,
		Confidence: confidence,
	}
}

// Sequence wraps frames in a motion sequence with a fresh session id. The
// capture window spans from the first frame to one interval past the last.
func Sequence(frames ...landmark.HandFrame) *landmark.MotionSequence {
	seq := &landmark.MotionSequence{
		SessionID: uuid.NewString(),
		Frames:    frames,
	}
	if len(frames) > 0 {
		seq.CaptureStartTime = frames[0].Timestamp
		seq.CaptureEndTime = frames[len(frames)-1].Timestamp + frameInterval
	}
	return seq
}

// SteadySequence produces n frames of an open hand drifting rightward at a
// constant rate. Constant velocity means zero variance, so the sequence
// scores maximum smoothness and passes every quality gate when n is large
// enough.
func SteadySequence(n int, hand landmark.Handedness) *landmark.MotionSequence {
	frames := make([]landmark.HandFrame, n)
	for i := 0; i < n; i++ {
		lms := Translate(OpenHand(), float64(i)*0.002, 0, 0)
		frames[i] = Frame(int64(i)*frameInterval, hand, 0.95, lms)
	}
	return Sequence(frames...)
}

// IdenticalSequence produces n frames with no motion at all.
func IdenticalSequence(n int, hand landmark.Handedness) *landmark.MotionSequence {
	frames := make([]landmark.HandFrame, n)
	for i := 0; i < n; i++ {
		frames[i] = Frame(int64(i)*frameInterval, hand, 0.95, OpenHand())
	}
	return Sequence(frames...)
}

// ErraticSequence produces n frames where the hand alternates between
// holding still and jumping, driving velocity variance up and smoothness
// below the quality floor.
func ErraticSequence(n int, hand landmark.Handedness) *landmark.MotionSequence {
	frames := make([]landmark.HandFrame, n)
	for i := 0; i < n; i++ {
		var dx float64
		if i%4 >= 2 {
			dx = 0.3
		}
		frames[i] = Frame(int64(i)*frameInterval, hand, 0.95, Translate(OpenHand(), dx, 0, 0))
	}
	return Sequence(frames...)
}

// LowConfidenceSequence is a steady sequence reported at poor tracker
// confidence.
func LowConfidenceSequence(n int, hand landmark.Handedness) *landmark.MotionSequence {
	seq := SteadySequence(n, hand)
	for i := range seq.Frames {
		seq.Frames[i].Confidence = 0.4
	}
	return seq
}
