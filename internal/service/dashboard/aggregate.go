package dashboard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

// MoodCount is one bar of the mood chart.
type MoodCount struct {
	Mood  mood.Label `json:"mood"`
	Count int        `json:"count"`
}

// CountMoods tallies labels over the whole log. Every known label is present,
// in declared order, even at zero; the counts always sum to len(entries).
func CountMoods(entries []session.MoodEntry) []MoodCount {
	labels := mood.Labels()
	index := make(map[mood.Label]int, len(labels))
	counts := make([]MoodCount, len(labels))
	for i, label := range labels {
		index[label] = i
		counts[i] = MoodCount{Mood: label}
	}

	for _, e := range entries {
		i, ok := index[e.Mood]
		if !ok {
			i = len(counts)
			index[e.Mood] = i
			counts = append(counts, MoodCount{Mood: e.Mood})
		}
		counts[i].Count++
	}
	return counts
}

// TranscriptLine is a conversation turn as parents see it.
type TranscriptLine struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// Transcript formats messages with title-cased speaker names.
func Transcript(messages []session.Message) []TranscriptLine {
	caser := cases.Title(language.English)
	lines := make([]TranscriptLine, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, TranscriptLine{
			Speaker: caser.String(string(msg.Role)),
			Content: msg.Content,
		})
	}
	return lines
}

// String renders the line as "Speaker: content".
func (l TranscriptLine) String() string {
	return l.Speaker + ": " + l.Content
}
