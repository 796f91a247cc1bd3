package pages

import (
	"context"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/dashboard"
)

// ParentView is the dashboard for grown-ups.
type ParentView struct {
	Conversation []string              `json:"conversation"`
	MoodCounts   []dashboard.MoodCount `json:"moodCounts,omitempty"`
	MoodTotal    int                   `json:"moodTotal"`
}

func (r *Router) parentPage(_ context.Context, state *session.State, _ Event, view *View) error {
	view.Title = Title(session.PageParent)
	parent := &ParentView{Conversation: []string{}}

	if len(state.Conversation) == 0 {
		view.notify(NoticeInfo, "No conversation history yet.")
	} else {
		for _, line := range dashboard.Transcript(state.RecentMessages(ChatHistorySize)) {
			parent.Conversation = append(parent.Conversation, line.String())
		}
	}

	if len(state.MoodLog) == 0 {
		view.notify(NoticeInfo, "No mood data available.")
	} else {
		parent.MoodCounts = dashboard.CountMoods(state.MoodLog)
		parent.MoodTotal = len(state.MoodLog)
	}

	view.Parent = parent
	return nil
}
