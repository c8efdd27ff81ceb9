package identity

import (
	"errors"
	"sync"
	"testing"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/testutil"
)

func newTestMatcher() *Matcher {
	return NewMatcher(Config{Store: NewMemoryProfileStore()})
}

func TestNewMatcher_Defaults(t *testing.T) {
	m := newTestMatcher()
	if m.threshold != DefaultVerificationThreshold {
		t.Errorf("expected default threshold %v, got %v", DefaultVerificationThreshold, m.threshold)
	}
	if m.minQuality != DefaultMinEnrollmentQuality {
		t.Errorf("expected default min quality %v, got %v", DefaultMinEnrollmentQuality, m.minQuality)
	}
}

func TestEnroll(t *testing.T) {
	m := newTestMatcher()

	result, err := m.Enroll("patient-1", testutil.SteadySequence(30, landmark.HandednessRight), "")
	if err != nil {
		t.Fatalf("unexpected enrollment error: %v", err)
	}
	if result.PatternID == "" {
		t.Error("expected a pattern id")
	}
	if result.EnrolledPatterns != 1 {
		t.Errorf("expected 1 enrolled pattern, got %d", result.EnrolledPatterns)
	}
	if result.QualityScore < DefaultMinEnrollmentQuality {
		t.Errorf("expected quality above the enrollment floor, got %f", result.QualityScore)
	}

	info, err := m.GetProfile("patient-1")
	if err != nil {
		t.Fatalf("unexpected profile error: %v", err)
	}
	if info.EnrolledPatterns != 1 {
		t.Errorf("expected 1 pattern on profile, got %d", info.EnrolledPatterns)
	}
	if info.DominantHand != landmark.HandednessRight {
		t.Errorf("expected right dominant hand, got %q", info.DominantHand)
	}
	if info.LastPatternDate == nil {
		t.Error("expected last pattern date to be set")
	}
}

func TestEnroll_InvalidSequence(t *testing.T) {
	m := newTestMatcher()

	seq := testutil.SteadySequence(30, landmark.HandednessRight)
	seq.SessionID = "not-a-uuid"

	_, err := m.Enroll("patient-1", seq, "")
	if !errors.Is(err, landmark.ErrInvalidSequence) {
		t.Errorf("expected ErrInvalidSequence, got %v", err)
	}
	if _, err := m.GetProfile("patient-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Error("expected no profile after rejected enrollment")
	}
}

func TestEnroll_TooFewFrames(t *testing.T) {
	m := newTestMatcher()

	// Rejected by wire validation before any feature extraction
	_, err := m.Enroll("patient-1", testutil.SteadySequence(3, landmark.HandednessRight), "")
	if !errors.Is(err, landmark.ErrInvalidSequence) {
		t.Errorf("expected ErrInvalidSequence, got %v", err)
	}
}

func TestEnroll_QualityRejection(t *testing.T) {
	m := newTestMatcher()

	_, err := m.Enroll("patient-1", testutil.LowConfidenceSequence(30, landmark.HandednessRight), "")

	var qualityErr *QualityError
	if !errors.As(err, &qualityErr) {
		t.Fatalf("expected QualityError, got %v", err)
	}
	if qualityErr.Op != "enrollment" {
		t.Errorf("expected op enrollment, got %q", qualityErr.Op)
	}
	if len(qualityErr.Issues) == 0 {
		t.Error("expected quality issues")
	}
	if qualityErr.QualityScore <= 0 {
		t.Errorf("expected reported quality score, got %f", qualityErr.QualityScore)
	}
	if _, err := m.GetProfile("patient-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Error("expected no profile after rejected enrollment")
	}
}

func TestEnroll_MinQualityGate(t *testing.T) {
	// A capture can pass every hard threshold yet miss a stricter quality floor.
	m := NewMatcher(Config{Store: NewMemoryProfileStore(), MinEnrollmentQuality: 0.99})

	_, err := m.Enroll("patient-1", testutil.SteadySequence(30, landmark.HandednessRight), "")

	var qualityErr *QualityError
	if !errors.As(err, &qualityErr) {
		t.Fatalf("expected QualityError, got %v", err)
	}
	if qualityErr.QualityScore >= 0.99 {
		t.Errorf("expected score below gate, got %f", qualityErr.QualityScore)
	}
}

func TestEnroll_PatternCap(t *testing.T) {
	m := newTestMatcher()

	var lastResult *EnrollmentResult
	for i := 0; i < MaxPatternsPerProfile+5; i++ {
		var err error
		lastResult, err = m.Enroll("patient-1", testutil.SteadySequence(30, landmark.HandednessRight), "")
		if err != nil {
			t.Fatalf("unexpected enrollment error: %v", err)
		}
	}
	if lastResult.EnrolledPatterns != MaxPatternsPerProfile {
		t.Errorf("expected pattern count capped at %d, got %d", MaxPatternsPerProfile, lastResult.EnrolledPatterns)
	}
}

func TestVerify_NotEnrolled(t *testing.T) {
	m := newTestMatcher()

	_, err := m.Verify("patient-1", testutil.SteadySequence(30, landmark.HandednessRight))
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestVerify_NotEnrolledBeforeQuality(t *testing.T) {
	// Enrollment status is checked before capture quality, so an unenrolled
	// user with a bad capture still sees the enrollment error.
	m := newTestMatcher()

	_, err := m.Verify("patient-1", testutil.ErraticSequence(30, landmark.HandednessRight))
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestVerify_QualityRejection(t *testing.T) {
	m := newTestMatcher()
	mustEnroll(t, m, "patient-1", testutil.SteadySequence(30, landmark.HandednessRight))

	_, err := m.Verify("patient-1", testutil.ErraticSequence(30, landmark.HandednessRight))

	var qualityErr *QualityError
	if !errors.As(err, &qualityErr) {
		t.Fatalf("expected QualityError, got %v", err)
	}
	if qualityErr.Op != "verification" {
		t.Errorf("expected op verification, got %q", qualityErr.Op)
	}
}

func TestVerify_Match(t *testing.T) {
	m := newTestMatcher()

	seq := testutil.SteadySequence(30, landmark.HandednessRight)
	enrollment := mustEnroll(t, m, "patient-1", seq)

	// Replaying the enrolled motion is a perfect match
	result, err := m.Verify("patient-1", seq)
	if err != nil {
		t.Fatalf("unexpected verification error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected verified, score %f", result.MatchScore)
	}
	if result.MatchScore < 0.999 {
		t.Errorf("expected near-perfect score, got %f", result.MatchScore)
	}
	if result.MatchedPatternID != enrollment.PatternID {
		t.Errorf("expected matched pattern %q, got %q", enrollment.PatternID, result.MatchedPatternID)
	}
	if result.Confidence != ConfidenceHigh {
		t.Errorf("expected high confidence, got %q", result.Confidence)
	}
	if result.QualityScore <= 0 {
		t.Errorf("expected quality score, got %f", result.QualityScore)
	}
}

func TestVerify_HandMismatch(t *testing.T) {
	m := newTestMatcher()
	mustEnroll(t, m, "patient-1", testutil.SteadySequence(30, landmark.HandednessRight))

	result, err := m.Verify("patient-1", testutil.SteadySequence(30, landmark.HandednessLeft))
	if err != nil {
		t.Fatalf("unexpected verification error: %v", err)
	}
	if result.Verified {
		t.Error("expected verification failure on hand mismatch")
	}
	if result.MatchScore != 0 {
		t.Errorf("expected zero score, got %f", result.MatchScore)
	}
	// Non-matches reveal neither the pattern nor a confidence band
	if result.MatchedPatternID != "" {
		t.Errorf("expected no matched pattern id, got %q", result.MatchedPatternID)
	}
	if result.Confidence != "" {
		t.Errorf("expected no confidence, got %q", result.Confidence)
	}
}

func TestVerify_BestPatternWins(t *testing.T) {
	m := newTestMatcher()

	mustEnroll(t, m, "patient-1", testutil.IdenticalSequence(30, landmark.HandednessRight))
	seq := testutil.SteadySequence(30, landmark.HandednessRight)
	closest := mustEnroll(t, m, "patient-1", seq)

	result, err := m.Verify("patient-1", seq)
	if err != nil {
		t.Fatalf("unexpected verification error: %v", err)
	}
	if !result.Verified {
		t.Fatalf("expected verified, score %f", result.MatchScore)
	}
	if result.MatchedPatternID != closest.PatternID {
		t.Errorf("expected best pattern %q, got %q", closest.PatternID, result.MatchedPatternID)
	}
}

func TestDeleteProfile(t *testing.T) {
	m := newTestMatcher()
	mustEnroll(t, m, "patient-1", testutil.SteadySequence(30, landmark.HandednessRight))

	deleted, err := m.DeleteProfile("patient-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
	}
	if _, err := m.GetProfile("patient-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound after delete, got %v", err)
	}

	// Idempotent
	deleted, err = m.DeleteProfile("patient-1")
	if err != nil || deleted {
		t.Errorf("expected repeat delete to report false, got %v %v", deleted, err)
	}
}

func TestEnroll_Concurrent(t *testing.T) {
	m := newTestMatcher()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Enroll("patient-1", testutil.SteadySequence(30, landmark.HandednessRight), ""); err != nil {
				t.Errorf("unexpected enrollment error: %v", err)
			}
		}()
	}
	wg.Wait()

	info, err := m.GetProfile("patient-1")
	if err != nil {
		t.Fatalf("unexpected profile error: %v", err)
	}
	// Serialized read-modify-write must not lose patterns
	if info.EnrolledPatterns != 8 {
		t.Errorf("expected 8 patterns, got %d", info.EnrolledPatterns)
	}
}

func TestEnroll_SignTypeDefault(t *testing.T) {
	store := NewMemoryProfileStore()
	m := NewMatcher(Config{Store: store})

	mustEnroll(t, m, "patient-1", testutil.SteadySequence(30, landmark.HandednessRight))

	profile, err := store.Get("patient-1")
	if err != nil {
		t.Fatalf("unexpected store error: %v", err)
	}
	if got := profile.SignaturePatterns[0].SignType; got != DefaultSignType {
		t.Errorf("expected sign type %q, got %q", DefaultSignType, got)
	}
}

func mustEnroll(t *testing.T, m *Matcher, userID string, seq *landmark.MotionSequence) *EnrollmentResult {
	t.Helper()
	result, err := m.Enroll(userID, seq, "")
	if err != nil {
		t.Fatalf("unexpected enrollment error: %v", err)
	}
	return result
}
