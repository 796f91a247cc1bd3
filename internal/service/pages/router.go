package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/content"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrActionNotOnPage = errors.New("action not available on current page")
)

// Action names a UI interaction.
type Action string

const (
	ActionRerun        Action = ""
	ActionNavigate     Action = "navigate"
	ActionChat         Action = "chat"
	ActionSelectGame   Action = "select_game"
	ActionPlayRPS      Action = "play_rps"
	ActionGuessNumber  Action = "guess_number"
	ActionAddStoryLine Action = "add_story_line"
	ActionSaveDrawing  Action = "save_drawing"
	ActionSaveJournal  Action = "save_journal"
)

// actionPage maps each widget action to the only page that renders it.
var actionPage = map[Action]session.Page{
	ActionChat:         session.PageChat,
	ActionSelectGame:   session.PageGames,
	ActionPlayRPS:      session.PageGames,
	ActionGuessNumber:  session.PageGames,
	ActionAddStoryLine: session.PageGames,
	ActionSaveDrawing:  session.PageDraw,
	ActionSaveJournal:  session.PageFeelings,
}

// Event is one UI interaction. Only the fields the action needs are read.
type Event struct {
	Action Action       `json:"action"`
	Page   session.Page `json:"page,omitempty"`
	Text   string       `json:"text,omitempty"`
	Game   session.Game `json:"game,omitempty"`
	Move   string       `json:"move,omitempty"`
	Guess  int          `json:"guess,omitempty"`
	Face   string       `json:"face,omitempty"`
	Notes  string       `json:"notes,omitempty"`
	Image  string       `json:"image,omitempty"`
}

// NoticeLevel styles a one-off message.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// Notice is a status line rendered above the page body.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// View is the rendered state of the current page. Exactly one page body is set.
type View struct {
	SessionID string       `json:"sessionId"`
	Page      session.Page `json:"page"`
	Title     string       `json:"title"`
	Notices   []Notice     `json:"notices,omitempty"`
	Sidebar   []NavButton  `json:"sidebar"`

	Home     *HomeView     `json:"home,omitempty"`
	Chat     *ChatView     `json:"chat,omitempty"`
	Games    *GamesView    `json:"games,omitempty"`
	Draw     *DrawView     `json:"draw,omitempty"`
	Feelings *FeelingsView `json:"feelings,omitempty"`
	Parent   *ParentView   `json:"parent,omitempty"`
	About    *AboutView    `json:"about,omitempty"`
}

func (v *View) notify(level NoticeLevel, text string) {
	v.Notices = append(v.Notices, Notice{Level: level, Text: text})
}

// Deps are the services page handlers use.
type Deps struct {
	Companion *companion.Service
	RPS       *game.RockPaperScissors
	Guesser   *game.NumberGuesser
	Drawings  *drawing.Service
	Content   *content.Service
	Now       func() time.Time
	Logger    *zap.Logger
}

type pageHandler func(ctx context.Context, state *session.State, evt Event, view *View) error

// Router renders exactly one page per event, chosen by the session's current page.
type Router struct {
	deps     Deps
	handlers map[session.Page]pageHandler
}

// NewRouter wires the seven page handlers.
func NewRouter(deps Deps) *Router {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Companion == nil {
		deps.Companion = companion.NewService(nil, nil, deps.Logger)
	}
	if deps.RPS == nil {
		deps.RPS = game.NewRockPaperScissors(nil)
	}
	if deps.Guesser == nil {
		deps.Guesser = game.NewNumberGuesser(nil)
	}
	if deps.Drawings == nil {
		deps.Drawings = drawing.NewService(drawing.Config{})
	}

	r := &Router{deps: deps}
	r.handlers = map[session.Page]pageHandler{
		session.PageMain:     r.homePage,
		session.PageChat:     r.chatPage,
		session.PageGames:    r.gamesPage,
		session.PageDraw:     r.drawPage,
		session.PageFeelings: r.feelingsPage,
		session.PageParent:   r.parentPage,
		session.PageAbout:    r.aboutPage,
	}
	return r
}

// Rerun applies evt to state and renders the current page. Navigation takes
// effect before rendering; any other action must belong to the current page.
// A failed action leaves state untouched.
func (r *Router) Rerun(ctx context.Context, state *session.State, evt Event) (View, error) {
	switch evt.Action {
	case ActionRerun:
	case ActionNavigate:
		page, err := session.ParsePage(string(evt.Page))
		if err != nil {
			return View{}, err
		}
		if page != state.Page {
			r.deps.Logger.Debug("navigate",
				zap.String("session", state.ID),
				zap.String("from", string(state.Page)),
				zap.String("to", string(page)),
			)
		}
		state.Page = page
		evt = Event{}
	default:
		if err := Allow(state, evt.Action); err != nil {
			return View{}, err
		}
	}

	handler, ok := r.handlers[state.Page]
	if !ok {
		// Unreachable while State.Page is only set through ParsePage.
		state.Page = session.PageMain
		handler = r.handlers[session.PageMain]
	}

	view := View{
		SessionID: state.ID,
		Page:      state.Page,
		Sidebar:   Sidebar(),
	}
	if err := handler(ctx, state, evt, &view); err != nil {
		return View{}, err
	}
	return view, nil
}

// Allow reports whether action can run on the session's current page.
func Allow(state *session.State, action Action) error {
	page, ok := actionPage[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if page != state.Page {
		return fmt.Errorf("%w: %s belongs to %s, current page is %s", ErrActionNotOnPage, action, page, state.Page)
	}
	return nil
}
