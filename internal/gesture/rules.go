package gesture

// suggestionRule is one advisory pattern over the keyframe summaries. Rules
// are evaluated in order; the first match wins. The result is diagnostic only
// and never feeds the verification decision.
type suggestionRule struct {
	name    string
	matches func(keyframes []Keyframe) bool
}

var suggestionRules = []suggestionRule{
	{
		// Fist held closed while nodding up or down.
		name: "yes",
		matches: func(kfs []Keyframe) bool {
			first, last := kfs[0], kfs[len(kfs)-1]
			return fingersClosed(first.Fingers) && fingersClosed(last.Fingers) &&
				anyMovement(kfs, Up, Down)
		},
	},
	{
		// Open hand waving side to side.
		name: "hello",
		matches: func(kfs []Keyframe) bool {
			return fingersOpen(kfs[0].Fingers) && anyMovement(kfs, Left, Right)
		},
	},
	{
		// Flat hand, palm up, moving away from the chin.
		name: "thank_you",
		matches: func(kfs []Keyframe) bool {
			first := kfs[0]
			return fingersOpen(first.Fingers) && first.Orientation == PalmUp &&
				anyMovement(kfs, Forward)
		},
	},
}

// suggestGesture runs the rule set over the keyframes. Returns an empty
// string when nothing matches or there are too few keyframes to judge.
func suggestGesture(keyframes []Keyframe) string {
	if len(keyframes) < 2 {
		return ""
	}
	for _, rule := range suggestionRules {
		if rule.matches(keyframes) {
			return rule.name
		}
	}
	return ""
}

// fingersClosed reports whether the four non-thumb fingers are all curled.
func fingersClosed(fs FingerState) bool {
	return !fs.IndexExtended && !fs.MiddleExtended && !fs.RingExtended && !fs.PinkyExtended
}

// fingersOpen reports whether the four non-thumb fingers are all extended.
func fingersOpen(fs FingerState) bool {
	return fs.IndexExtended && fs.MiddleExtended && fs.RingExtended && fs.PinkyExtended
}

func anyMovement(kfs []Keyframe, dirs ...Direction) bool {
	for _, kf := range kfs {
		for _, d := range dirs {
			if kf.Movement == d {
				return true
			}
		}
	}
	return false
}
