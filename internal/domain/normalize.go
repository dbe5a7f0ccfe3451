package domain

import "strings"

// NormalizeMetricKey prepares a metric key for catalog resolution.
// Only surrounding whitespace is stripped: keys are matched case-sensitively
// so that a user's "RPE" and "rpe" stay the distinct keys they typed.
// An empty result means the key is invalid.
func NormalizeMetricKey(key string) string {
	return strings.TrimSpace(key)
}

// NormalizeExerciseName prepares an exercise name for catalog resolution:
// trims surrounding whitespace and compresses runs of spaces into one.
// Case is preserved: catalog names are display strings ("Bench Press").
func NormalizeExerciseName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
