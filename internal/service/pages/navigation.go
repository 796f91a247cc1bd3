package pages

import "github.com/zhouzirui/playmate/backend/internal/model/session"

// NavButton is a button that switches pages.
type NavButton struct {
	Label  string       `json:"label"`
	Icon   string       `json:"icon"`
	Target session.Page `json:"target"`
}

var titles = map[session.Page]string{
	session.PageMain:     "🎮 Welcome to PlayMate!",
	session.PageChat:     "💬 Chat with PlayMate",
	session.PageGames:    "🎮 Play Games with PlayMate",
	session.PageDraw:     "🎨 Drawing Canvas",
	session.PageFeelings: "📝 Feelings Journal",
	session.PageParent:   "👪 Parent Dashboard",
	session.PageAbout:    "ℹ️ About PlayMate",
}

// Title returns the heading of a page.
func Title(p session.Page) string {
	return titles[p]
}

// Menu lists the activity buttons on the home page.
func Menu() []NavButton {
	return []NavButton{
		{Label: "Chat", Icon: "💬", Target: session.PageChat},
		{Label: "Games", Icon: "🎮", Target: session.PageGames},
		{Label: "Draw", Icon: "🎨", Target: session.PageDraw},
		{Label: "Feelings Journal", Icon: "📝", Target: session.PageFeelings},
		{Label: "Parent Dashboard", Icon: "👪", Target: session.PageParent},
		{Label: "About PlayMate", Icon: "ℹ️", Target: session.PageAbout},
	}
}

// Sidebar lists the always-visible navigation, home first.
func Sidebar() []NavButton {
	return append([]NavButton{{Label: "Home", Icon: "🏠", Target: session.PageMain}}, Menu()...)
}
