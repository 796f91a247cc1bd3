package session

import (
	"time"

	"github.com/google/uuid"
)

// InitialStory seeds the story builder.
const InitialStory = "Once upon a time"

// State is everything one user session owns. It is not safe for concurrent
// use; the session service serializes access per session.
type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	LastSeen  time.Time `json:"lastSeen"`

	Page Page `json:"page"`
	Game Game `json:"game"`

	Conversation []Message   `json:"conversation"`
	MoodLog      []MoodEntry `json:"moodLog"`
	Drawings     []Drawing   `json:"drawings"`
	Story        string      `json:"story"`

	SecretNumber int `json:"-"`
	Tries        int `json:"tries"`
}

// New returns a fresh session on the home page.
func New(id string, secret int, now time.Time) *State {
	return &State{
		ID:           id,
		CreatedAt:    now,
		LastSeen:     now,
		Page:         PageMain,
		Game:         GameRockPaperScissors,
		Conversation: make([]Message, 0, 16),
		MoodLog:      make([]MoodEntry, 0, 16),
		Story:        InitialStory,
		SecretNumber: secret,
	}
}

// AddMessage appends a conversation turn.
func (s *State) AddMessage(role Role, content string, at time.Time) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: at,
	}
	s.Conversation = append(s.Conversation, msg)
	return msg
}

// LogMood appends to the mood log. A timestamp earlier than the previous
// entry is raised to it so the log stays ordered by insertion.
func (s *State) LogMood(entry MoodEntry) MoodEntry {
	if n := len(s.MoodLog); n > 0 && entry.Timestamp.Before(s.MoodLog[n-1].Timestamp) {
		entry.Timestamp = s.MoodLog[n-1].Timestamp
	}
	s.MoodLog = append(s.MoodLog, entry)
	return entry
}

// AddDrawing appends a canvas snapshot.
func (s *State) AddDrawing(d Drawing) {
	s.Drawings = append(s.Drawings, d)
}

// RecentMessages returns a copy of the last n conversation turns.
func (s *State) RecentMessages(n int) []Message {
	return tail(s.Conversation, n)
}

// RecentMoods returns a copy of the last n mood entries.
func (s *State) RecentMoods(n int) []MoodEntry {
	return tail(s.MoodLog, n)
}

// RecentDrawings returns a copy of the last n drawings.
func (s *State) RecentDrawings(n int) []Drawing {
	return tail(s.Drawings, n)
}

func tail[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	start := len(items) - n
	if start < 0 {
		start = 0
	}
	out := make([]T, len(items)-start)
	copy(out, items[start:])
	return out
}
