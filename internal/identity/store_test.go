package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

func TestMemoryProfileStore_GetMissing(t *testing.T) {
	store := NewMemoryProfileStore()
	if _, err := store.Get("nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMemoryProfileStore_SaveAndGet(t *testing.T) {
	store := NewMemoryProfileStore()

	profile := &Profile{
		UserID:         "patient-1",
		EnrollmentDate: time.Now().UTC(),
		DominantHand:   landmark.HandednessRight,
		SignaturePatterns: []SignaturePattern{
			{PatternID: "p1", SignType: "verification_sign"},
		},
	}
	if err := store.Save(profile); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, err := store.Get("patient-1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got.UserID != "patient-1" || len(got.SignaturePatterns) != 1 {
		t.Errorf("unexpected profile %+v", got)
	}

	// Returned profiles are copies; mutating one must not affect the store
	got.SignaturePatterns[0].PatternID = "mutated"
	again, _ := store.Get("patient-1")
	if again.SignaturePatterns[0].PatternID != "p1" {
		t.Error("store state leaked through returned profile")
	}

	// Mutating the saved input must not affect the store either
	profile.SignaturePatterns[0].PatternID = "mutated-input"
	again, _ = store.Get("patient-1")
	if again.SignaturePatterns[0].PatternID != "p1" {
		t.Error("store state aliases the saved profile")
	}
}

func TestMemoryProfileStore_Delete(t *testing.T) {
	store := NewMemoryProfileStore()
	store.Save(&Profile{UserID: "patient-1"})

	if deleted, _ := store.Delete("patient-1"); !deleted {
		t.Error("expected delete to report true")
	}
	if deleted, _ := store.Delete("patient-1"); deleted {
		t.Error("expected repeat delete to report false")
	}
	if _, err := store.Get("patient-1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound after delete, got %v", err)
	}
}
