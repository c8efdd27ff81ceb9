package gesture

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// DefaultChallengeTTL is how long a verification challenge stays valid.
const DefaultChallengeTTL = 60 * time.Second

// Challenge is a prompted gesture the patient must perform before the expiry
// deadline. ExpiresAt is Unix milliseconds.
type Challenge struct {
	ChallengeID  string `json:"challengeId"`
	GestureType  string `json:"gestureType"`
	Instructions string `json:"instructions"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// Verification gesture vocabulary with canned instruction strings.
var challengeVocabulary = []struct {
	gestureType  string
	instructions string
}{
	{"yes", "Make a fist and nod it up and down"},
	{"no", "Extend index finger and shake side to side"},
	{"hello", "Wave with an open hand"},
	{"thank_you", "Touch chin with flat hand and move forward"},
	{"my_name", "Point to yourself with index finger"},
	{"understand", "Touch forehead with extended index finger"},
}

// NewChallenge picks a uniformly random gesture from the vocabulary and
// stamps it with a fresh id and expiry.
func NewChallenge(ttl time.Duration) Challenge {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	entry := challengeVocabulary[rand.IntN(len(challengeVocabulary))]
	return Challenge{
		ChallengeID:  uuid.NewString(),
		GestureType:  entry.gestureType,
		Instructions: entry.instructions,
		ExpiresAt:    time.Now().Add(ttl).UnixMilli(),
	}
}

// Expired reports whether the challenge deadline has passed at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.UnixMilli() > c.ExpiresAt
}
