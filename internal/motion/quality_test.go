package motion

import (
	"math"
	"strings"
	"testing"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/testutil"
)

func extractOrFail(t *testing.T, seq *landmark.MotionSequence) Features {
	t.Helper()
	f, err := Extract(seq)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	return f
}

func TestValidateQuality_GoodCapture(t *testing.T) {
	f := extractOrFail(t, testutil.SteadySequence(30, landmark.HandednessRight))

	result := ValidateQuality(f)
	if !result.IsValid {
		t.Fatalf("expected valid capture, got issues %v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Errorf("expected no issues, got %v", result.Issues)
	}
	// 0.95 confidence, full smoothness, 1.5s of 30 frames
	if result.QualityScore < 0.9 || result.QualityScore > 1 {
		t.Errorf("expected quality score in [0.9, 1], got %f", result.QualityScore)
	}
}

func TestValidateQuality_LowConfidence(t *testing.T) {
	f := extractOrFail(t, testutil.LowConfidenceSequence(30, landmark.HandednessRight))

	result := ValidateQuality(f)
	if result.IsValid {
		t.Fatal("expected invalid capture")
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0], "confidence") {
		t.Errorf("expected a single confidence issue, got %v", result.Issues)
	}
	// Score is still reported for rejected captures
	if result.QualityScore <= 0 {
		t.Errorf("expected positive quality score, got %f", result.QualityScore)
	}
}

func TestValidateQuality_ShortCapture(t *testing.T) {
	// 8 frames over 0.4s trips both the frame count and duration checks.
	f := extractOrFail(t, testutil.SteadySequence(8, landmark.HandednessRight))

	result := ValidateQuality(f)
	if result.IsValid {
		t.Fatal("expected invalid capture")
	}
	if len(result.Issues) != 2 {
		t.Errorf("expected 2 issues, got %v", result.Issues)
	}
}

func TestValidateQuality_ErraticMotion(t *testing.T) {
	f := extractOrFail(t, testutil.ErraticSequence(30, landmark.HandednessRight))

	result := ValidateQuality(f)
	if result.IsValid {
		t.Fatal("expected invalid capture")
	}
	if len(result.Issues) != 1 || !strings.Contains(result.Issues[0], "erratic") {
		t.Errorf("expected a single smoothness issue, got %v", result.Issues)
	}
}

func TestQualityScore_Saturation(t *testing.T) {
	f := Features{
		AverageConfidence: 1,
		MotionSmoothness:  1,
		FrameDuration:     10,  // past the 2s cap
		FrameCount:        300, // past the 30 frame cap
	}
	if score := QualityScore(f); math.Abs(score-1) > 1e-12 {
		t.Errorf("expected saturated score 1, got %f", score)
	}

	// Halving duration and frame count below the caps scales those terms
	f.FrameDuration = 1
	f.FrameCount = 15
	expected := 0.30 + 0.25 + 0.20*0.5 + 0.25*0.5
	if score := QualityScore(f); math.Abs(score-expected) > 1e-12 {
		t.Errorf("expected score %f, got %f", expected, score)
	}
}
