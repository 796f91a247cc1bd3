package session

import (
	"time"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
)

// Role tells who wrote a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the chat conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// MoodSource records where a mood entry came from.
type MoodSource string

const (
	SourceChat    MoodSource = "chat"
	SourceJournal MoodSource = "journal"
)

// MoodEntry is one line of the mood log. Chat entries carry the message that
// was classified; journal entries carry the chosen face and free notes.
type MoodEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Mood      mood.Label `json:"mood"`
	Source    MoodSource `json:"source"`
	Face      string     `json:"face,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Message   string     `json:"message,omitempty"`
}

// Drawing is a saved canvas snapshot.
type Drawing struct {
	ID        string    `json:"id"`
	DataURL   string    `json:"dataUrl"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}
