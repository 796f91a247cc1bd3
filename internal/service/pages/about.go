package pages

import (
	"context"
	"html/template"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

// AboutView describes PlayMate for grown-ups.
type AboutView struct {
	HTML template.HTML `json:"html"`
}

func (r *Router) aboutPage(_ context.Context, _ *session.State, _ Event, view *View) error {
	view.Title = Title(session.PageAbout)
	about := &AboutView{}
	if r.deps.Content != nil {
		about.HTML = r.deps.Content.About().HTML
	}
	view.About = about
	return nil
}
