// Package session orchestrates conversation turns: persist the user message,
// invoke the companion with bounded history, persist the bot reply, and
// record the inferred mood. A session processes one turn at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mindfulmate/backend/internal/model/chat"
	"github.com/mindfulmate/backend/internal/service/companion"
)

var (
	// ErrEmptyInput rejects blank or whitespace-only submissions. Callers
	// treat it as a silent no-op, not a user-visible failure.
	ErrEmptyInput = errors.New("message is empty")

	// ErrTurnInFlight rejects a submission while another turn is still
	// awaiting its classification.
	ErrTurnInFlight = errors.New("another turn is already in flight")
)

// Store is the persistence surface the session depends on.
type Store interface {
	AppendMessage(ctx context.Context, role, content string) (chat.Message, error)
	ListMessages(ctx context.Context) ([]chat.Message, error)
	ClearMessages(ctx context.Context) error
	AppendMood(ctx context.Context, label string) (chat.MoodEntry, error)
	ListMoods(ctx context.Context) ([]chat.MoodEntry, error)
}

// Companion produces the bot side of a turn. Implementations must not fail:
// they substitute a fallback result instead.
type Companion interface {
	Respond(ctx context.Context, history []chat.Message, userMessage string) companion.Result
}

// Session owns the turn-taking protocol for one conversation.
type Session struct {
	id        string
	store     Store
	companion Companion

	mu       sync.Mutex
	inFlight bool
}

// New creates a session with injected store and companion dependencies.
func New(store Store, comp Companion) *Session {
	return &Session{
		id:        uuid.NewString(),
		store:     store,
		companion: comp,
	}
}

// ID returns the session handle used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Send runs one turn end-to-end and returns the completed pair. The user
// message is durable before the companion is invoked; a storage failure on
// the user message fails the turn visibly and skips classification.
func (s *Session) Send(ctx context.Context, text string) (chat.Turn, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return chat.Turn{}, ErrEmptyInput
	}

	if !s.begin() {
		return chat.Turn{}, ErrTurnInFlight
	}
	defer s.settle()

	// Prior turns only; the new message travels separately.
	history, err := s.store.ListMessages(ctx)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to load history: %w", err)
	}

	userMsg, err := s.store.AppendMessage(ctx, chat.RoleUser, content)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to persist user message: %w", err)
	}

	result := s.companion.Respond(ctx, history, content)

	botMsg, err := s.store.AppendMessage(ctx, chat.RoleBot, result.Response)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to persist bot message: %w", err)
	}
	botMsg.Mood = string(result.Mood)

	if _, err := s.store.AppendMood(ctx, string(result.Mood)); err != nil {
		// The chat turn is already durable; losing one mood point is not
		// worth failing the turn over.
		log.Printf("[session] %s: failed to record mood %q: %v", s.id, result.Mood, err)
	}

	return chat.Turn{
		User:        userMsg,
		Bot:         botMsg,
		Mood:        string(result.Mood),
		Suggestions: result.Suggestions,
	}, nil
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Session) settle() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// History re-fetches the full transcript from the store.
func (s *Session) History(ctx context.Context) ([]chat.Message, error) {
	return s.store.ListMessages(ctx)
}

// MoodHistory re-fetches all mood entries from the store.
func (s *Session) MoodHistory(ctx context.Context) ([]chat.MoodEntry, error) {
	return s.store.ListMoods(ctx)
}

// Clear deletes the chat transcript. Mood history is intentionally kept.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.ClearMessages(ctx); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
