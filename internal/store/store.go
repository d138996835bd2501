// Package store provides durable chat and mood persistence backed by an
// embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mindfulmate/backend/internal/analysis/mood"
	"github.com/mindfulmate/backend/internal/model/chat"
)

// ErrInvalidMood rejects labels outside the closed mood set at the boundary.
var ErrInvalidMood = errors.New("mood label outside supported set")

// timeLayout is fixed-width so lexicographic order in SQLite matches
// chronological order, including sub-second timestamps.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store owns the SQLite handle for the moods and chats tables.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	// WAL plus a busy timeout so handler-level reads do not trip over writes.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.runMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendMessage persists one chat message, assigning its id and timestamp.
func (s *Store) AppendMessage(ctx context.Context, role, content string) (chat.Message, error) {
	ts := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (role, content, timestamp) VALUES (?, ?, ?)`,
		role, content, ts.Format(timeLayout))
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to append chat message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to resolve chat message id: %w", err)
	}

	return chat.Message{ID: id, Role: role, Content: content, Timestamp: ts}, nil
}

// ListMessages returns every chat message, oldest first. Messages created in
// the same timestamp granule keep their insertion order via the id tie-break.
func (s *Store) ListMessages(ctx context.Context) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, timestamp FROM chats ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		var ts string
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat messages: %w", err)
	}

	return messages, nil
}

// ClearMessages deletes all chat messages. Clearing an empty table succeeds.
// Mood entries are untouched; mood history outlives chat clears.
func (s *Store) ClearMessages(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chats`); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return nil
}

// AppendMood persists one mood entry after validating the label.
func (s *Store) AppendMood(ctx context.Context, label string) (chat.MoodEntry, error) {
	if !mood.Valid(label) {
		return chat.MoodEntry{}, fmt.Errorf("%w: %q", ErrInvalidMood, label)
	}

	ts := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO moods (mood, timestamp) VALUES (?, ?)`,
		label, ts.Format(timeLayout))
	if err != nil {
		return chat.MoodEntry{}, fmt.Errorf("failed to append mood entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return chat.MoodEntry{}, fmt.Errorf("failed to resolve mood entry id: %w", err)
	}

	return chat.MoodEntry{ID: id, Mood: label, Timestamp: ts}, nil
}

// ListMoods returns every mood entry under the same ordering contract as
// ListMessages.
func (s *Store) ListMoods(ctx context.Context) ([]chat.MoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mood, timestamp FROM moods ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []chat.MoodEntry
	for rows.Next() {
		var entry chat.MoodEntry
		var ts string
		if err := rows.Scan(&entry.ID, &entry.Mood, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entry.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mood entries: %w", err)
	}

	return entries, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", raw, err)
	}
	return ts.UTC(), nil
}
