// Package gesture derives semantic descriptors from hand motion sequences:
// finger extension, hand orientation, movement direction, and path shape.
// Its output feeds diagnostics and coarse classification, never the identity
// matching decision. It also issues verification challenges.
package gesture

import (
	"math"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

// maxKeyframes caps how many evenly spaced frames are analyzed per sequence.
const maxKeyframes = 10

// extensionRatio is the geometric threshold for a finger to count as
// extended: tip-to-MCP distance must exceed 1.3x the PIP-to-MCP distance.
const extensionRatio = 1.3

// directionDeadzone is the minimum per-axis wrist displacement, in
// normalized units, below which movement is considered stationary.
const directionDeadzone = 0.02

// stationaryPathDistance is the total wrist travel below which the whole
// path is classified as stationary.
const stationaryPathDistance = 0.1

// Orientation is the estimated palm orientation of a keyframe.
type Orientation string

const (
	PalmUp      Orientation = "palm_up"
	PalmDown    Orientation = "palm_down"
	PalmForward Orientation = "palm_forward"
	PalmBack    Orientation = "palm_back"
)

// Direction is the dominant axis of wrist movement between keyframes.
type Direction string

const (
	Up         Direction = "up"
	Down       Direction = "down"
	Left       Direction = "left"
	Right      Direction = "right"
	Forward    Direction = "forward"
	Back       Direction = "back"
	Stationary Direction = "stationary"
)

// PathShape classifies the overall path traced by the wrist.
type PathShape string

const (
	PathStationary PathShape = "stationary"
	PathHorizontal PathShape = "horizontal"
	PathVertical   PathShape = "vertical"
	PathCircular   PathShape = "circular"
)

// FingerState holds per-finger extension booleans for one keyframe.
type FingerState struct {
	ThumbExtended  bool `json:"thumbExtended"`
	IndexExtended  bool `json:"indexExtended"`
	MiddleExtended bool `json:"middleExtended"`
	RingExtended   bool `json:"ringExtended"`
	PinkyExtended  bool `json:"pinkyExtended"`
}

// Keyframe is the analysis of one sampled frame. Movement is empty for the
// first keyframe, which has no predecessor to compare against.
type Keyframe struct {
	FrameIndex  int         `json:"frameIndex"`
	Timestamp   int64       `json:"timestamp"`
	Fingers     FingerState `json:"fingerPositions"`
	Orientation Orientation `json:"handOrientation"`
	Movement    Direction   `json:"movementDirection,omitempty"`
}

// BoundingBox is the axis-aligned extent of the wrist path.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Path summarizes the wrist trajectory over the full frame set.
type Path struct {
	BoundingBox   BoundingBox `json:"boundingBox"`
	TotalDistance float64     `json:"totalDistance"`
	Shape         PathShape   `json:"pathShape"`
}

// Analysis is the full diagnostic result for a motion sequence.
type Analysis struct {
	Keyframes        []Keyframe          `json:"keyframes"`
	Path             Path                `json:"gesturePath"`
	SignDuration     float64             `json:"signDuration"`
	Complexity       float64             `json:"complexity"`
	Handedness       landmark.Handedness `json:"handedness"`
	Confidence       float64             `json:"confidence"`
	SuggestedGesture string              `json:"suggestedGesture,omitempty"`
}

// Analyze extracts gesture characteristics from a sequence. The caller is
// expected to have validated the wire shape already; Analyze assumes at least
// one well-formed frame.
func Analyze(seq *landmark.MotionSequence) Analysis {
	frames := seq.Frames

	keyframeCount := maxKeyframes
	if len(frames) < keyframeCount {
		keyframeCount = len(frames)
	}
	interval := len(frames) / keyframeCount

	keyframes := make([]Keyframe, 0, keyframeCount)
	for i := 0; i < keyframeCount; i++ {
		frameIndex := i * interval
		if frameIndex > len(frames)-1 {
			frameIndex = len(frames) - 1
		}
		frame := &frames[frameIndex]

		kf := Keyframe{
			FrameIndex:  frameIndex,
			Timestamp:   frame.Timestamp,
			Fingers:     fingerState(frame),
			Orientation: orientation(frame),
		}
		if i > 0 {
			prevIndex := frameIndex - interval
			if prevIndex < 0 {
				prevIndex = 0
			}
			kf.Movement = movementDirection(&frames[prevIndex], frame)
		}
		keyframes = append(keyframes, kf)
	}

	var confidenceSum float64
	for i := range frames {
		confidenceSum += frames[i].Confidence
	}

	return Analysis{
		Keyframes:        keyframes,
		Path:             tracePath(frames),
		SignDuration:     float64(seq.CaptureEndTime-seq.CaptureStartTime) / 1000,
		Complexity:       complexity(keyframes),
		Handedness:       frames[0].Handedness,
		Confidence:       confidenceSum / float64(len(frames)),
		SuggestedGesture: suggestGesture(keyframes),
	}
}

// fingerState evaluates the extension heuristic for all five fingers.
// The thumb uses CMC/MCP/tip joints; the other fingers use MCP/PIP/tip.
func fingerState(frame *landmark.HandFrame) FingerState {
	lm := frame.Landmarks
	return FingerState{
		ThumbExtended:  isExtended(lm[landmark.ThumbCMC], lm[landmark.ThumbMCP], lm[landmark.ThumbTip]),
		IndexExtended:  isExtended(lm[landmark.IndexMCP], lm[landmark.IndexPIP], lm[landmark.IndexTip]),
		MiddleExtended: isExtended(lm[landmark.MiddleMCP], lm[landmark.MiddlePIP], lm[landmark.MiddleTip]),
		RingExtended:   isExtended(lm[landmark.RingMCP], lm[landmark.RingPIP], lm[landmark.RingTip]),
		PinkyExtended:  isExtended(lm[landmark.PinkyMCP], lm[landmark.PinkyPIP], lm[landmark.PinkyTip]),
	}
}

func isExtended(mcp, pip, tip landmark.Landmark) bool {
	return landmark.Distance(mcp, tip) > landmark.Distance(mcp, pip)*extensionRatio
}

// orientation estimates palm orientation from the wrist and middle-finger MCP.
// The dominant axis of the wrist-to-MCP vector decides between the depth pair
// (forward/back) and the vertical pair (down/up).
func orientation(frame *landmark.HandFrame) Orientation {
	wrist := frame.Landmarks[landmark.Wrist]
	middleMCP := frame.Landmarks[landmark.MiddleMCP]

	zDiff := middleMCP.Z - wrist.Z
	yDiff := middleMCP.Y - wrist.Y

	if math.Abs(zDiff) > math.Abs(yDiff) {
		if zDiff > 0 {
			return PalmForward
		}
		return PalmBack
	}
	if yDiff > 0 {
		return PalmDown
	}
	return PalmUp
}

// movementDirection picks the axis of largest absolute wrist displacement
// between two frames, or Stationary inside the deadzone.
func movementDirection(prev, cur *landmark.HandFrame) Direction {
	prevWrist := prev.Landmarks[landmark.Wrist]
	curWrist := cur.Landmarks[landmark.Wrist]

	dx := curWrist.X - prevWrist.X
	dy := curWrist.Y - prevWrist.Y
	dz := curWrist.Z - prevWrist.Z

	absDx, absDy, absDz := math.Abs(dx), math.Abs(dy), math.Abs(dz)
	if absDx < directionDeadzone && absDy < directionDeadzone && absDz < directionDeadzone {
		return Stationary
	}

	switch {
	case absDx >= absDy && absDx >= absDz:
		if dx > 0 {
			return Right
		}
		return Left
	case absDy >= absDx && absDy >= absDz:
		if dy > 0 {
			return Down
		}
		return Up
	default:
		if dz > 0 {
			return Forward
		}
		return Back
	}
}

// tracePath computes the wrist bounding box, total travel, and path shape
// over the full frame set.
func tracePath(frames []landmark.HandFrame) Path {
	first := frames[0].Landmarks[landmark.Wrist]
	box := BoundingBox{MinX: first.X, MaxX: first.X, MinY: first.Y, MaxY: first.Y}

	var totalDistance float64
	for i := range frames {
		w := frames[i].Landmarks[landmark.Wrist]
		box.MinX = math.Min(box.MinX, w.X)
		box.MaxX = math.Max(box.MaxX, w.X)
		box.MinY = math.Min(box.MinY, w.Y)
		box.MaxY = math.Max(box.MaxY, w.Y)
		if i > 0 {
			totalDistance += landmark.Distance(w, frames[i-1].Landmarks[landmark.Wrist])
		}
	}

	height := box.MaxY - box.MinY
	if height == 0 {
		height = 0.001
	}
	aspectRatio := (box.MaxX - box.MinX) / height

	var shape PathShape
	switch {
	case totalDistance < stationaryPathDistance:
		shape = PathStationary
	case aspectRatio > 2:
		shape = PathHorizontal
	case aspectRatio < 0.5:
		shape = PathVertical
	default:
		shape = PathCircular
	}

	return Path{BoundingBox: box, TotalDistance: totalDistance, Shape: shape}
}

// complexity counts keyframe-to-keyframe transitions where any of the five
// finger states, the orientation, or the movement direction changed,
// normalized by the 7 tracked attributes times the keyframe count.
func complexity(keyframes []Keyframe) float64 {
	var changes int
	for i := 1; i < len(keyframes); i++ {
		prev, cur := &keyframes[i-1], &keyframes[i]

		if prev.Fingers.ThumbExtended != cur.Fingers.ThumbExtended {
			changes++
		}
		if prev.Fingers.IndexExtended != cur.Fingers.IndexExtended {
			changes++
		}
		if prev.Fingers.MiddleExtended != cur.Fingers.MiddleExtended {
			changes++
		}
		if prev.Fingers.RingExtended != cur.Fingers.RingExtended {
			changes++
		}
		if prev.Fingers.PinkyExtended != cur.Fingers.PinkyExtended {
			changes++
		}
		if prev.Orientation != cur.Orientation {
			changes++
		}
		if prev.Movement != cur.Movement {
			changes++
		}
	}

	maxPossibleChanges := len(keyframes) * 7
	return math.Min(1, float64(changes)/float64(maxPossibleChanges))
}
