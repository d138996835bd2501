package session_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mindfulmate/backend/internal/model/chat"
	"github.com/mindfulmate/backend/internal/service/companion"
	"github.com/mindfulmate/backend/internal/service/session"
	"github.com/mindfulmate/backend/internal/store"
)

// failingCompanion simulates an unreachable model: it substitutes the fixed
// fallback result, as the companion contract requires.
type failingCompanion struct {
	calls int
}

func (c *failingCompanion) Respond(_ context.Context, _ []chat.Message, _ string) companion.Result {
	c.calls++
	return companion.Fallback()
}

// blockingCompanion parks until released so a second Send can race it.
type blockingCompanion struct {
	started chan struct{}
	release chan struct{}
}

func (c *blockingCompanion) Respond(_ context.Context, _ []chat.Message, _ string) companion.Result {
	close(c.started)
	<-c.release
	return companion.Fallback()
}

// brokenStore fails every write to exercise the storage-failure path.
type brokenStore struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStore) AppendMessage(context.Context, string, string) (chat.Message, error) {
	return chat.Message{}, errDiskGone
}
func (brokenStore) ListMessages(context.Context) ([]chat.Message, error) { return nil, nil }
func (brokenStore) ClearMessages(context.Context) error                  { return errDiskGone }
func (brokenStore) AppendMood(context.Context, string) (chat.MoodEntry, error) {
	return chat.MoodEntry{}, errDiskGone
}
func (brokenStore) ListMoods(context.Context) ([]chat.MoodEntry, error) { return nil, nil }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSendRejectsEmptyInput(t *testing.T) {
	sess := session.New(newTestStore(t), &failingCompanion{})

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := sess.Send(context.Background(), input); !errors.Is(err, session.ErrEmptyInput) {
			t.Fatalf("Send(%q): expected ErrEmptyInput, got %v", input, err)
		}
	}
}

func TestSendPersistsTurnWhenCompanionFails(t *testing.T) {
	st := newTestStore(t)
	comp := &failingCompanion{}
	sess := session.New(st, comp)
	ctx := context.Background()

	turn, err := sess.Send(ctx, "I failed my exam")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}

	fallback := companion.Fallback()
	if turn.Mood != string(fallback.Mood) {
		t.Fatalf("turn mood = %q, want %q", turn.Mood, fallback.Mood)
	}
	if turn.Bot.Content != fallback.Response {
		t.Fatalf("bot content = %q, want the fixed apology", turn.Bot.Content)
	}

	messages, err := sess.History(ctx)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected user and bot messages persisted, got %d", len(messages))
	}
	if messages[0].Role != chat.RoleUser || messages[0].Content != "I failed my exam" {
		t.Fatalf("unexpected user message: %+v", messages[0])
	}
	if messages[1].Role != chat.RoleBot {
		t.Fatalf("unexpected bot message: %+v", messages[1])
	}

	moods, err := sess.MoodHistory(ctx)
	if err != nil {
		t.Fatalf("MoodHistory err: %v", err)
	}
	if len(moods) != 1 || moods[0].Mood != "Neutral" {
		t.Fatalf("expected one Neutral mood entry, got %+v", moods)
	}
}

func TestSendForwardsPriorHistoryOnly(t *testing.T) {
	st := newTestStore(t)
	var seen []chat.Message
	recorder := companionFunc(func(_ context.Context, history []chat.Message, _ string) companion.Result {
		seen = history
		return companion.Fallback()
	})
	sess := session.New(st, recorder)
	ctx := context.Background()

	if _, err := sess.Send(ctx, "first message"); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if len(seen) != 0 {
		t.Fatalf("first turn should see no prior history, got %d messages", len(seen))
	}

	if _, err := sess.Send(ctx, "second message"); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("second turn should see the first pair, got %d messages", len(seen))
	}
	if seen[len(seen)-1].Role != chat.RoleBot {
		t.Fatalf("history should end with the prior bot reply, got %+v", seen[len(seen)-1])
	}
}

func TestSendRejectsConcurrentTurn(t *testing.T) {
	st := newTestStore(t)
	comp := &blockingCompanion{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	sess := session.New(st, comp)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := sess.Send(ctx, "slow turn")
		done <- err
	}()

	<-comp.started
	if _, err := sess.Send(ctx, "eager second turn"); !errors.Is(err, session.ErrTurnInFlight) {
		t.Fatalf("expected ErrTurnInFlight, got %v", err)
	}

	close(comp.release)
	if err := <-done; err != nil {
		t.Fatalf("first turn failed: %v", err)
	}

	// The session is reusable once the turn settles.
	if _, err := sess.Send(ctx, "third turn"); err != nil {
		t.Fatalf("Send after settle err: %v", err)
	}
}

func TestSendStorageFailureSkipsClassification(t *testing.T) {
	comp := &failingCompanion{}
	sess := session.New(brokenStore{}, comp)

	if _, err := sess.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected a storage failure to surface")
	}
	if comp.calls != 0 {
		t.Fatalf("companion must not run after a failed user persist, ran %d times", comp.calls)
	}
}

func TestClearLeavesMoodHistory(t *testing.T) {
	st := newTestStore(t)
	sess := session.New(st, &failingCompanion{})
	ctx := context.Background()

	if _, err := sess.Send(ctx, "rough week"); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if err := sess.Clear(ctx); err != nil {
		t.Fatalf("Clear err: %v", err)
	}

	messages, err := sess.History(ctx)
	if err != nil {
		t.Fatalf("History err: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(messages))
	}

	moods, err := sess.MoodHistory(ctx)
	if err != nil {
		t.Fatalf("MoodHistory err: %v", err)
	}
	if len(moods) != 1 {
		t.Fatalf("mood history must survive a clear, got %d entries", len(moods))
	}
}

// companionFunc adapts a function to the Companion interface.
type companionFunc func(ctx context.Context, history []chat.Message, userMessage string) companion.Result

func (f companionFunc) Respond(ctx context.Context, history []chat.Message, userMessage string) companion.Result {
	return f(ctx, history, userMessage)
}
