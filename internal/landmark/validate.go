package landmark

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidSequence is returned when a motion sequence does not satisfy the
// wire shape: session id, frame count, landmark count, coordinate ranges,
// handedness, confidence, and capture window ordering.
var ErrInvalidSequence = errors.New("invalid motion sequence")

// MinFrames is the minimum number of frames a signing attempt must contain.
const MinFrames = 5

// Validate checks the sequence against the wire shape contract. It returns an
// error wrapping ErrInvalidSequence describing the first violation found.
func (s *MotionSequence) Validate() error {
	if err := uuid.Validate(s.SessionID); err != nil {
		return fmt.Errorf("%w: sessionId must be a UUID", ErrInvalidSequence)
	}
	if len(s.Frames) < MinFrames {
		return fmt.Errorf("%w: at least %d frames required, got %d", ErrInvalidSequence, MinFrames, len(s.Frames))
	}
	if s.CaptureEndTime < s.CaptureStartTime {
		return fmt.Errorf("%w: capture end time precedes start time", ErrInvalidSequence)
	}
	for i := range s.Frames {
		if err := s.Frames[i].validate(); err != nil {
			return fmt.Errorf("%w: frame %d: %v", ErrInvalidSequence, i, err)
		}
	}
	return nil
}

func (f *HandFrame) validate() error {
	if len(f.Landmarks) != NumLandmarks {
		return fmt.Errorf("expected %d landmarks, got %d", NumLandmarks, len(f.Landmarks))
	}
	if f.Handedness != HandednessLeft && f.Handedness != HandednessRight {
		return fmt.Errorf("handedness must be %q or %q, got %q", HandednessLeft, HandednessRight, f.Handedness)
	}
	if f.Confidence < 0 || f.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", f.Confidence)
	}
	for j, lm := range f.Landmarks {
		if lm.X < 0 || lm.X > 1 || lm.Y < 0 || lm.Y > 1 {
			return fmt.Errorf("landmark %d coordinates (%v, %v) out of range [0,1]", j, lm.X, lm.Y)
		}
	}
	return nil
}
