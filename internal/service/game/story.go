package game

import "github.com/zhouzirui/playmate/backend/internal/model/session"

// AppendStory adds line to the shared story, separated by a single space.
func AppendStory(state *session.State, line string) string {
	state.Story += " " + line
	return state.Story
}
