package gesture

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewChallenge(t *testing.T) {
	before := time.Now()
	c := NewChallenge(time.Minute)

	if err := uuid.Validate(c.ChallengeID); err != nil {
		t.Errorf("expected UUID challenge id, got %q", c.ChallengeID)
	}
	if c.Instructions == "" {
		t.Error("expected non-empty instructions")
	}

	var known bool
	for _, entry := range challengeVocabulary {
		if entry.gestureType == c.GestureType {
			known = true
			if entry.instructions != c.Instructions {
				t.Errorf("instructions do not match vocabulary entry for %q", c.GestureType)
			}
		}
	}
	if !known {
		t.Errorf("gesture type %q not in vocabulary", c.GestureType)
	}

	expiry := time.UnixMilli(c.ExpiresAt)
	if expiry.Before(before.Add(59*time.Second)) || expiry.After(before.Add(61*time.Second)) {
		t.Errorf("expected expiry about a minute out, got %v", expiry)
	}
}

func TestNewChallenge_DefaultTTL(t *testing.T) {
	before := time.Now()
	c := NewChallenge(0)

	expiry := time.UnixMilli(c.ExpiresAt)
	min := before.Add(DefaultChallengeTTL - time.Second)
	max := before.Add(DefaultChallengeTTL + time.Second)
	if expiry.Before(min) || expiry.After(max) {
		t.Errorf("expected default TTL expiry, got %v", expiry)
	}
}

func TestNewChallenge_CoversVocabulary(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[NewChallenge(time.Minute).GestureType] = true
	}
	if len(seen) != len(challengeVocabulary) {
		t.Errorf("expected all %d gesture types over 500 draws, got %d", len(challengeVocabulary), len(seen))
	}
}

func TestChallenge_Expired(t *testing.T) {
	now := time.Now()
	c := Challenge{ExpiresAt: now.Add(time.Minute).UnixMilli()}

	if c.Expired(now) {
		t.Error("expected live challenge")
	}
	if !c.Expired(now.Add(2 * time.Minute)) {
		t.Error("expected expired challenge")
	}
	// The deadline itself is still live
	if c.Expired(time.UnixMilli(c.ExpiresAt)) {
		t.Error("expected challenge live exactly at the deadline")
	}
}
