package chat

import "time"

// Roles recorded on persisted messages.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one persisted half of a conversation turn. Mood is only set on
// bot messages produced by classification and is not a column of the chats
// table; the durable mood signal lives in MoodEntry.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodEntry records one inferred mood. Entries are append-only and deliberately
// carry no reference to the chat message that produced them, so mood history
// survives a chat clear.
type MoodEntry struct {
	ID        int64     `json:"id"`
	Mood      string    `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn pairs a persisted user message with the resulting bot reply.
type Turn struct {
	User        Message  `json:"user"`
	Bot         Message  `json:"bot"`
	Mood        string   `json:"mood"`
	Suggestions []string `json:"suggestions,omitempty"`
}
