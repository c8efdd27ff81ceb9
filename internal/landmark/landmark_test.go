package landmark

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestDistance(t *testing.T) {
	a := Landmark{X: 0.1, Y: 0.2, Z: 0.3}

	if d := Distance(a, a); d != 0 {
		t.Errorf("expected distance 0 for identical landmarks, got %f", d)
	}

	b := Landmark{X: 0.4, Y: 0.2, Z: 0.3}
	if d := Distance(a, b); math.Abs(d-0.3) > 1e-12 {
		t.Errorf("expected distance 0.3, got %f", d)
	}

	// Distance is symmetric
	c := Landmark{X: 0.9, Y: 0.7, Z: -0.2}
	if Distance(a, c) != Distance(c, a) {
		t.Error("expected symmetric distance")
	}

	// All three axes contribute
	d := Landmark{X: 0.1 + 1, Y: 0.2 + 2, Z: 0.3 + 2}
	if got := Distance(a, d); got != 3 {
		t.Errorf("expected distance 3, got %f", got)
	}
}

func validFrame(ts int64) HandFrame {
	lms := make([]Landmark, NumLandmarks)
	for i := range lms {
		lms[i] = Landmark{X: 0.5, Y: 0.5}
	}
	return HandFrame{
		Timestamp:  ts,
		Handedness: HandednessRight,
		Landmarks:  lms,
		Confidence: 0.9,
	}
}

func validSequence() *MotionSequence {
	frames := make([]HandFrame, MinFrames)
	for i := range frames {
		frames[i] = validFrame(int64(i) * 50)
	}
	return &MotionSequence{
		SessionID:        uuid.NewString(),
		Frames:           frames,
		CaptureStartTime: 0,
		CaptureEndTime:   500,
	}
}

func TestMotionSequence_Validate(t *testing.T) {
	if err := validSequence().Validate(); err != nil {
		t.Fatalf("expected valid sequence, got %v", err)
	}
}

func TestMotionSequence_Validate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *MotionSequence)
	}{
		{"bad session id", func(s *MotionSequence) {
			s.SessionID = "not-a-uuid"
		}},
		{"too few frames", func(s *MotionSequence) {
			s.Frames = s.Frames[:MinFrames-1]
		}},
		{"end precedes start", func(s *MotionSequence) {
			s.CaptureStartTime = 1000
			s.CaptureEndTime = 500
		}},
		{"wrong landmark count", func(s *MotionSequence) {
			s.Frames[2].Landmarks = s.Frames[2].Landmarks[:NumLandmarks-1]
		}},
		{"unknown handedness", func(s *MotionSequence) {
			s.Frames[0].Handedness = "ambidextrous"
		}},
		{"confidence above one", func(s *MotionSequence) {
			s.Frames[1].Confidence = 1.5
		}},
		{"negative confidence", func(s *MotionSequence) {
			s.Frames[1].Confidence = -0.1
		}},
		{"coordinate out of range", func(s *MotionSequence) {
			s.Frames[3].Landmarks[IndexTip].X = 1.2
		}},
		{"negative coordinate", func(s *MotionSequence) {
			s.Frames[3].Landmarks[Wrist].Y = -0.01
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := validSequence()
			tt.mutate(seq)
			err := seq.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidSequence) {
				t.Errorf("expected error wrapping ErrInvalidSequence, got %v", err)
			}
		})
	}
}

func TestMotionSequence_Validate_ZCoordinateUnconstrained(t *testing.T) {
	seq := validSequence()
	seq.Frames[0].Landmarks[ThumbTip].Z = -3.5
	if err := seq.Validate(); err != nil {
		t.Errorf("expected z to be unconstrained, got %v", err)
	}
}
