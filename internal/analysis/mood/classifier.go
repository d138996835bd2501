package mood

import "strings"

// Decision is the outcome of the keyword classifier.
type Decision struct {
	Mood  Label
	Score int
}

var keywordBuckets = map[Label][]string{
	Happy: {
		"happy", "glad", "great", "awesome", "amazing", "excited", "wonderful",
		"thank you", "thanks", "proud", "love", "passed", "aced", "yay", "lol",
		"best day", "finally", "relieved",
	},
	Sad: {
		"sad", "unhappy", "depressed", "miserable", "cry", "crying", "lonely",
		"alone", "hopeless", "hurt", "heartbroken", "lost", "grief", "miss",
		"empty", "down",
	},
	Stressed: {
		"stressed", "stress", "overwhelmed", "deadline", "too much", "pressure",
		"exhausted", "burnout", "burned out", "can't keep up", "exam", "exams",
		"assignment", "workload", "no time", "behind on",
	},
	Anxious: {
		"anxious", "anxiety", "nervous", "worried", "worry", "scared", "afraid",
		"panic", "panicking", "racing", "can't sleep", "what if", "dread",
		"terrified", "on edge",
	},
	Angry: {
		"angry", "furious", "mad", "rage", "hate", "annoyed", "pissed",
		"unfair", "fed up", "sick of", "frustrated", "frustrating",
	},
}

var selfHarmPhrases = []string{
	"want to die", "kill myself", "end my life", "end it all", "hurt myself",
	"self harm", "self-harm", "suicide", "suicidal", "no reason to live",
	"better off without me",
}

// Classify scores the user's text against the keyword buckets and returns the
// dominant mood. Text with no signal is Neutral.
func Classify(text string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Decision{Mood: Neutral}
	}

	scores := make(map[Label]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[label] += 3
			}
		}
	}

	// Exclamation marks lean positive only when nothing negative matched.
	if exclamations := strings.Count(text, "!"); exclamations > 0 {
		if scores[Sad] == 0 && scores[Angry] == 0 && scores[Anxious] == 0 && scores[Stressed] == 0 {
			scores[Happy] += exclamations
		}
	}

	best := Neutral
	bestScore := 0
	for _, label := range All() {
		if s := scores[label]; s > bestScore {
			bestScore = s
			best = label
		}
	}

	return Decision{Mood: best, Score: bestScore}
}

// SelfHarmRisk reports whether the text contains a self-harm indicator. The
// caller must respond with the fixed supportive redirect, nothing else.
func SelfHarmRisk(text string) bool {
	normalized := strings.ToLower(text)
	for _, phrase := range selfHarmPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
