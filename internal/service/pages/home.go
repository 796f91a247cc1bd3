package pages

import (
	"context"
	"html/template"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/content"
)

// HomeView is the landing page.
type HomeView struct {
	Image  string        `json:"image"`
	Intro  template.HTML `json:"intro"`
	Prompt string        `json:"prompt"`
	Menu   []NavButton   `json:"menu"`
}

func (r *Router) homePage(_ context.Context, _ *session.State, _ Event, view *View) error {
	view.Title = Title(session.PageMain)
	home := &HomeView{
		Image:  content.HeroImage,
		Prompt: "What would you like to do?",
		Menu:   Menu(),
	}
	if r.deps.Content != nil {
		home.Intro = r.deps.Content.Home().HTML
	}
	view.Home = home
	return nil
}
