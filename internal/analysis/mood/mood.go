package mood

import "strings"

// Label is one of the closed set of moods the product tracks.
type Label string

const (
	Happy    Label = "Happy"
	Neutral  Label = "Neutral"
	Stressed Label = "Stressed"
	Sad      Label = "Sad"
	Anxious  Label = "Anxious"
	Angry    Label = "Angry"
)

// All returns the closed mood set in chart-legend order.
func All() []Label {
	return []Label{Happy, Neutral, Stressed, Sad, Anxious, Angry}
}

// Valid reports whether raw is exactly one of the closed set.
func Valid(raw string) bool {
	switch Label(raw) {
	case Happy, Neutral, Stressed, Sad, Anxious, Angry:
		return true
	default:
		return false
	}
}

// Parse resolves a label case-insensitively. Model output is not reliable
// about casing, so "happy" and "Happy" both resolve.
func Parse(raw string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "happy":
		return Happy, true
	case "neutral":
		return Neutral, true
	case "stressed":
		return Stressed, true
	case "sad":
		return Sad, true
	case "anxious":
		return Anxious, true
	case "angry":
		return Angry, true
	default:
		return "", false
	}
}

// Score maps a stored mood label to the numeric chart scale. Unknown strings
// score as Neutral so analytics stay total over whatever the store returns.
func Score(label string) float64 {
	switch Label(label) {
	case Happy:
		return 5
	case Neutral:
		return 3
	case Stressed:
		return 2
	case Anxious:
		return 1.5
	case Sad:
		return 1
	case Angry:
		return 1
	default:
		return 3
	}
}
