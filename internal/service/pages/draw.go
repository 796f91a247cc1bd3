package pages

import (
	"context"

	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
)

// RecentDrawings is how many saved drawings the draw page shows.
const RecentDrawings = 3

// CanvasSpec tells the client how to set up its canvas widget.
type CanvasSpec struct {
	FillColor   string `json:"fillColor"`
	StrokeWidth int    `json:"strokeWidth"`
	Height      int    `json:"height"`
	Mode        string `json:"mode"`
}

// DrawView renders the drawing canvas.
type DrawView struct {
	Available bool              `json:"available"`
	Canvas    *CanvasSpec       `json:"canvas,omitempty"`
	Drawings  []session.Drawing `json:"drawings,omitempty"`
}

func (r *Router) drawPage(_ context.Context, state *session.State, evt Event, view *View) error {
	view.Title = Title(session.PageDraw)

	if !r.deps.Drawings.Enabled() {
		if evt.Action == ActionSaveDrawing {
			return drawing.ErrDrawingUnavailable
		}
		view.notify(NoticeError, drawing.UnavailableMessage)
		view.Draw = &DrawView{Available: false}
		return nil
	}

	if evt.Action == ActionSaveDrawing {
		d, err := r.deps.Drawings.Save(state, evt.Image, r.deps.Now())
		if err != nil {
			return err
		}
		r.deps.Logger.Debug("drawing saved",
			zap.String("session", state.ID),
			zap.Int("width", d.Width),
			zap.Int("height", d.Height),
		)
		view.notify(NoticeSuccess, drawing.SavedMessage)
	}

	view.Draw = &DrawView{
		Available: true,
		Canvas: &CanvasSpec{
			FillColor:   "rgba(255, 165, 0, 0.3)",
			StrokeWidth: 3,
			Height:      400,
			Mode:        "freedraw",
		},
		Drawings: state.RecentDrawings(RecentDrawings),
	}
	return nil
}
