package pages

import (
	"context"
	"strings"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
)

// ChatHistorySize is how many messages the chat page shows.
const ChatHistorySize = 5

// ChatView shows the tail of the conversation.
type ChatView struct {
	Messages    []session.Message   `json:"messages"`
	Placeholder string              `json:"placeholder"`
	Last        *companion.Exchange `json:"last,omitempty"`
}

func (r *Router) chatPage(ctx context.Context, state *session.State, evt Event, view *View) error {
	view.Title = Title(session.PageChat)
	chat := &ChatView{Placeholder: "Type your message..."}

	if evt.Action == ActionChat && strings.TrimSpace(evt.Text) != "" {
		ex, err := r.deps.Companion.Chat(ctx, state, evt.Text)
		if err != nil {
			return err
		}
		chat.Last = &ex
	}

	chat.Messages = state.RecentMessages(ChatHistorySize)
	view.Chat = chat
	return nil
}

// RenderChat renders the chat page after a turn that ran outside Rerun, such
// as a streamed reply.
func (r *Router) RenderChat(state *session.State, ex companion.Exchange) View {
	view := View{
		SessionID: state.ID,
		Page:      state.Page,
		Title:     Title(session.PageChat),
		Sidebar:   Sidebar(),
		Chat: &ChatView{
			Messages:    state.RecentMessages(ChatHistorySize),
			Placeholder: "Type your message...",
			Last:        &ex,
		},
	}
	return view
}
