package companion

import "github.com/mindfulmate/backend/internal/analysis/mood"

const fallbackResponse = "I'm here for you, but I'm having a little trouble connecting right now. How can I help?"

const selfHarmResponse = "I'm really sorry that you're feeling this way. You are not alone. Please consider talking to someone you trust or a mental health professional. This is for support only and not a replacement for professional care."

// Fallback is the fixed result substituted when the model cannot be reached
// or returns unusable output.
func Fallback() Result {
	return Result{
		Mood:        mood.Neutral,
		Response:    fallbackResponse,
		Suggestions: []string{"Take a deep breath", "Try again in a moment"},
	}
}

var supportiveResponses = map[mood.Label]string{
	mood.Happy:    "That's wonderful to hear! Hold on to that feeling — moments like this are worth savoring. What made today go so well?",
	mood.Neutral:  "Thanks for checking in. I'm here whenever you want to talk about how things are going.",
	mood.Stressed: "That sounds like a lot to carry right now. Remember that you don't have to handle everything at once — small steps count.",
	mood.Sad:      "I'm sorry you're feeling down. It's okay to feel this way, and you don't have to go through it alone.",
	mood.Anxious:  "It makes sense to feel uneasy when so much feels uncertain. Let's slow things down together for a moment.",
	mood.Angry:    "It sounds like something really got under your skin. Your frustration is valid — want to talk through what happened?",
}

var supportiveSuggestions = map[mood.Label][]string{
	mood.Happy:    {"Write down what went well today", "Share the good news with a friend"},
	mood.Neutral:  {"Take a short walk", "Check in with yourself later today"},
	mood.Stressed: {"Break the work into one small next step", "Try a 5-minute breathing exercise"},
	mood.Sad:      {"Reach out to someone you trust", "Be gentle with yourself today"},
	mood.Anxious:  {"Try box breathing: in for 4, hold 4, out 4", "Ground yourself: name 5 things you can see"},
	mood.Angry:    {"Step away from the situation for a few minutes", "Try writing down what upset you"},
}

var selfHarmSuggestions = []string{
	"Call or text a crisis helpline",
	"Reach out to a counselor or someone you trust right now",
}

// heuristicResult serves turns without a configured model: keyword mood
// classification plus a canned supportive reply. Self-harm indicators always
// produce the fixed redirect regardless of other signals.
func (s *Service) heuristicResult(userMessage string) Result {
	if mood.SelfHarmRisk(userMessage) {
		return Result{
			Mood:        mood.Sad,
			Response:    selfHarmResponse,
			Suggestions: selfHarmSuggestions,
		}
	}

	decision := mood.Classify(userMessage)
	return Result{
		Mood:        decision.Mood,
		Response:    supportiveResponses[decision.Mood],
		Suggestions: supportiveSuggestions[decision.Mood],
	}
}
