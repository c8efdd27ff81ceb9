package telehealth

import (
	"errors"
	"testing"
	"time"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/gesture"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()

	if _, err := store.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	session := &Session{
		SessionID:          "s1",
		PatientID:          "patient-1",
		ProviderID:         "provider-1",
		SessionType:        SessionConsultation,
		CreatedAt:          time.Now().UTC(),
		VerificationStatus: StatusPending,
	}
	if err := store.Save(session); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	got, err := store.Get("s1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	// Returned sessions are copies
	got.VerificationStatus = StatusVerified
	again, _ := store.Get("s1")
	if again.VerificationStatus != StatusPending {
		t.Error("store state leaked through returned session")
	}

	if n := len(store.List()); n != 1 {
		t.Errorf("expected 1 listed session, got %d", n)
	}
}

func TestMemorySessionStore_Challenges(t *testing.T) {
	store := NewMemorySessionStore()
	store.Save(&Session{SessionID: "s1"})

	if _, ok := store.Challenge("s1"); ok {
		t.Error("expected no challenge initially")
	}

	c := gesture.NewChallenge(time.Minute)
	store.SetChallenge("s1", c)

	got, ok := store.Challenge("s1")
	if !ok || got.ChallengeID != c.ChallengeID {
		t.Errorf("expected stored challenge %q, got %+v", c.ChallengeID, got)
	}

	store.DeleteChallenge("s1")
	if _, ok := store.Challenge("s1"); ok {
		t.Error("expected challenge to be removed")
	}
}

func TestMemorySessionStore_DeleteRemovesChallenge(t *testing.T) {
	store := NewMemorySessionStore()
	store.Save(&Session{SessionID: "s1"})
	store.SetChallenge("s1", gesture.NewChallenge(time.Minute))

	if !store.Delete("s1") {
		t.Error("expected delete to report true")
	}
	if store.Delete("s1") {
		t.Error("expected repeat delete to report false")
	}
	if _, ok := store.Challenge("s1"); ok {
		t.Error("expected challenge to be removed with the session")
	}
}
