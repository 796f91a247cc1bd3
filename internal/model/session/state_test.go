package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
)

func TestNewStartsOnHomePage(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := New("abc", 7, now)

	assert.Equal(t, PageMain, s.Page)
	assert.Equal(t, GameRockPaperScissors, s.Game)
	assert.Equal(t, InitialStory, s.Story)
	assert.Equal(t, 7, s.SecretNumber)
	assert.Zero(t, s.Tries)
	assert.Empty(t, s.Conversation)
	assert.Equal(t, now, s.CreatedAt)
}

func TestLogMoodKeepsInsertionOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := New("abc", 1, base)

	s.LogMood(MoodEntry{Timestamp: base.Add(time.Minute), Mood: mood.Happy})
	got := s.LogMood(MoodEntry{Timestamp: base, Mood: mood.Sad})

	assert.Equal(t, base.Add(time.Minute), got.Timestamp)
	require.Len(t, s.MoodLog, 2)
	assert.False(t, s.MoodLog[1].Timestamp.Before(s.MoodLog[0].Timestamp))
}

func TestRecentReturnsCopies(t *testing.T) {
	now := time.Now()
	s := New("abc", 1, now)
	for _, text := range []string{"a", "b", "c", "d", "e", "f"} {
		s.AddMessage(RoleUser, text, now)
	}

	recent := s.RecentMessages(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "b", recent[0].Content)
	assert.Equal(t, "f", recent[4].Content)

	recent[0].Content = "changed"
	assert.Equal(t, "b", s.Conversation[1].Content)

	assert.Len(t, s.RecentMessages(50), 6)
	assert.Empty(t, s.RecentMessages(0))
	assert.Empty(t, s.RecentDrawings(3))
}

func TestParsePage(t *testing.T) {
	for _, p := range Pages() {
		got, err := ParsePage(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	assert.Len(t, Pages(), 7)

	_, err := ParsePage("settings")
	require.ErrorIs(t, err, ErrUnknownPage)
}

func TestParseGame(t *testing.T) {
	got, err := ParseGame("story-builder")
	require.NoError(t, err)
	assert.Equal(t, GameStoryBuilder, got)

	_, err = ParseGame("chess")
	require.ErrorIs(t, err, ErrUnknownGame)
}
