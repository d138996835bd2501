// Package companion produces the bot side of a conversation turn: an
// empathetic response, a mood label from the closed set, and optional coping
// suggestions. It is backed by an LLM chain and degrades first to keyword
// heuristics, then to a fixed fallback result, so it never fails a turn.
package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mindfulmate/backend/internal/analysis/mood"
	"github.com/mindfulmate/backend/internal/model/chat"
)

// Result is the structured companion output for one user turn.
type Result struct {
	Mood        mood.Label `json:"mood"`
	Response    string     `json:"response"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// Config controls the companion service.
type Config struct {
	HistoryLimit int
}

// Service classifies the user's mood and composes a reply. A nil chat model
// is allowed; the service then runs entirely on the heuristic tier.
type Service struct {
	chain        compose.Runnable[map[string]any, *schema.Message]
	historyLimit int
}

// NewService builds the companion chain. chatModel may be nil when no model
// credentials are configured.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 20
	}

	svc := &Service{historyLimit: historyLimit}
	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{message}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile companion chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// Enabled reports whether the LLM tier is available.
func (s *Service) Enabled() bool {
	return s != nil && s.chain != nil
}

// Respond produces the bot turn for userMessage given the prior history,
// oldest first. It always returns a usable Result.
func (s *Service) Respond(ctx context.Context, history []chat.Message, userMessage string) Result {
	if !s.Enabled() {
		return s.heuristicResult(userMessage)
	}

	input := map[string]any{
		"history": s.buildHistory(history),
		"message": userMessage,
	}

	msg, err := s.chain.Invoke(ctx, input)
	if err != nil {
		log.Printf("[companion] model invoke failed, using fallback: %v", err)
		return Fallback()
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		log.Printf("[companion] model returned empty content, using fallback")
		return Fallback()
	}

	payload, err := parseCompanionOutput(msg.Content)
	if err != nil {
		log.Printf("[companion] model output unusable, using fallback: %v", err)
		return Fallback()
	}

	label, ok := mood.Parse(payload.Mood)
	if !ok {
		log.Printf("[companion] model returned unknown mood %q, using fallback", payload.Mood)
		return Fallback()
	}

	response := strings.TrimSpace(payload.Response)
	if response == "" {
		return Fallback()
	}

	return Result{Mood: label, Response: response, Suggestions: payload.Suggestions}
}

// buildHistory converts the bounded tail of prior messages to model messages.
func (s *Service) buildHistory(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > s.historyLimit {
		startIdx = len(messages) - s.historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleBot:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}

type companionPayload struct {
	Mood        string   `json:"mood"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// parseCompanionOutput extracts the JSON object from the model's reply. The
// model occasionally wraps the object in prose or code fences.
func parseCompanionOutput(content string) (*companionPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &companionPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}
