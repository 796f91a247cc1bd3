package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

var ErrUnknownFace = errors.New("unknown face")

// RecentJournalEntries is how many mood log lines the journal shows.
const RecentJournalEntries = 3

// Face is one step of the feelings scale.
type Face struct {
	Face string     `json:"face"`
	Mood mood.Label `json:"mood"`
}

// Faces returns the scale from saddest to happiest.
func Faces() []Face {
	return []Face{
		{Face: "😭", Mood: mood.Sad},
		{Face: "😞", Mood: mood.Sad},
		{Face: "😐", Mood: mood.Neutral},
		{Face: "😊", Mood: mood.Happy},
		{Face: "🎉", Mood: mood.Happy},
	}
}

// ParseFace looks up a face on the scale.
func ParseFace(raw string) (Face, error) {
	trimmed := strings.TrimSpace(raw)
	for _, f := range Faces() {
		if f.Face == trimmed {
			return f, nil
		}
	}
	return Face{}, fmt.Errorf("%w: %q", ErrUnknownFace, raw)
}

// JournalLine is a mood log entry as the journal lists it.
type JournalLine struct {
	Date string     `json:"date"`
	Mood mood.Label `json:"mood"`
	Face string     `json:"face,omitempty"`
	Text string     `json:"text"`
	Age  string     `json:"age"`
	Line string     `json:"line"`
}

// FeelingsView renders the feelings journal.
type FeelingsView struct {
	Question string        `json:"question"`
	Faces    []Face        `json:"faces"`
	Recent   []JournalLine `json:"recent"`
}

func (r *Router) feelingsPage(_ context.Context, state *session.State, evt Event, view *View) error {
	view.Title = Title(session.PageFeelings)
	now := r.deps.Now()

	if evt.Action == ActionSaveJournal {
		face, err := ParseFace(evt.Face)
		if err != nil {
			return err
		}
		state.LogMood(session.MoodEntry{
			Timestamp: now,
			Mood:      face.Mood,
			Source:    session.SourceJournal,
			Face:      face.Face,
			Notes:     evt.Notes,
		})
		view.notify(NoticeSuccess, "Entry saved!")
	}

	recent := state.RecentMoods(RecentJournalEntries)
	lines := make([]JournalLine, 0, len(recent))
	for _, e := range recent {
		lines = append(lines, journalLine(e, now))
	}

	view.Feelings = &FeelingsView{
		Question: "How are you feeling today?",
		Faces:    Faces(),
		Recent:   lines,
	}
	return nil
}

func journalLine(e session.MoodEntry, now time.Time) JournalLine {
	shown := e.Face
	if shown == "" {
		shown = string(e.Mood)
	}
	text := e.Notes
	if e.Source == session.SourceChat {
		text = e.Message
	}

	date := e.Timestamp.Format("2006-01-02")
	return JournalLine{
		Date: date,
		Mood: e.Mood,
		Face: e.Face,
		Text: text,
		Age:  humanize.RelTime(e.Timestamp, now, "ago", "from now"),
		Line: fmt.Sprintf("%s: %s - %s", date, shown, text),
	}
}
