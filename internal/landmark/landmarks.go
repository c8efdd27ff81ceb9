// Package landmark defines the hand landmark value types submitted by the
// browser-side tracker and the wire-shape validation applied before any
// feature extraction.
package landmark

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Landmark is a single 3D hand landmark. X and Y are normalized frame
// coordinates in [0,1]; Z is relative depth and unconstrained.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance calculates the Euclidean distance between two landmarks.
func Distance(a, b Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Handedness identifies which hand produced a frame.
type Handedness string

const (
	// HandednessLeft marks frames captured from the left hand.
	HandednessLeft Handedness = "left"
	// HandednessRight marks frames captured from the right hand.
	HandednessRight Handedness = "right"
)

// HandFrame is one sampled instant of tracker output: 21 landmarks plus the
// tracker's detection confidence.
type HandFrame struct {
	Timestamp  int64      `json:"timestamp"`
	Handedness Handedness `json:"handedness"`
	Landmarks  []Landmark `json:"landmarks"`
	Confidence float64    `json:"confidence"`
}

// MotionSequence is one complete signing attempt: an ordered series of hand
// frames bounded by the capture window. Timestamps are Unix milliseconds.
type MotionSequence struct {
	SessionID        string      `json:"sessionId"`
	Frames           []HandFrame `json:"frames"`
	CaptureStartTime int64       `json:"captureStartTime"`
	CaptureEndTime   int64       `json:"captureEndTime"`
}
