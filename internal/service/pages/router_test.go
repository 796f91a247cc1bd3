package pages

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/content"
	"github.com/zhouzirui/playmate/backend/internal/service/dashboard"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, drawingsEnabled bool) *Router {
	t.Helper()
	pages, err := content.NewService()
	require.NoError(t, err)

	// Always picks index 0: PlayMate plays rock, new secrets are 1.
	zero := func(int) int { return 0 }
	return NewRouter(Deps{
		Companion: companion.NewService(mood.Default(), nil, nil),
		RPS:       game.NewRockPaperScissors(zero),
		Guesser:   game.NewNumberGuesser(zero),
		Drawings:  drawing.NewService(drawing.Config{Enabled: drawingsEnabled}),
		Content:   pages,
		Now:       func() time.Time { return testNow },
	})
}

func newState() *session.State {
	return session.New("sess", 4, testNow)
}

func rerun(t *testing.T, r *Router, state *session.State, evt Event) View {
	t.Helper()
	view, err := r.Rerun(context.Background(), state, evt)
	require.NoError(t, err)
	return view
}

func TestRerunRendersHomeByDefault(t *testing.T) {
	r := newTestRouter(t, true)
	view := rerun(t, r, newState(), Event{})

	assert.Equal(t, session.PageMain, view.Page)
	assert.Equal(t, "sess", view.SessionID)
	require.NotNil(t, view.Home)
	assert.Len(t, view.Home.Menu, 6)
	assert.Len(t, view.Sidebar, 7)
	assert.Contains(t, string(view.Home.Intro), "Say Hello!")
	assert.Nil(t, view.Chat)
}

func TestNavigateAlwaysLandsOnTarget(t *testing.T) {
	r := newTestRouter(t, true)

	for _, from := range session.Pages() {
		for _, to := range session.Pages() {
			state := newState()
			state.Page = from

			view := rerun(t, r, state, Event{Action: ActionNavigate, Page: to})
			assert.Equal(t, to, state.Page, "%s -> %s", from, to)
			assert.Equal(t, to, view.Page)
			assert.Equal(t, Title(to), view.Title)
		}
	}
}

func TestNavigateUnknownPage(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageChat

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionNavigate, Page: "settings"})
	require.ErrorIs(t, err, session.ErrUnknownPage)
	assert.Equal(t, session.PageChat, state.Page)
}

func TestActionRejectedOffPage(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionChat, Text: "hi"})
	require.ErrorIs(t, err, ErrActionNotOnPage)
	assert.Empty(t, state.Conversation)

	_, err = r.Rerun(context.Background(), state, Event{Action: "dance"})
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestChatPage(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageChat

	for _, text := range []string{"hello", "I love pizza", "I'm scared"} {
		rerun(t, r, state, Event{Action: ActionChat, Text: text})
	}
	view := rerun(t, r, state, Event{Action: ActionChat, Text: "game time"})

	require.NotNil(t, view.Chat)
	assert.Len(t, view.Chat.Messages, ChatHistorySize)
	require.NotNil(t, view.Chat.Last)
	assert.Equal(t, companion.ReplyGame, view.Chat.Last.Reply.Content)
	assert.Len(t, state.Conversation, 8)
	require.Len(t, state.MoodLog, 4)
	assert.Equal(t, mood.Sad, state.MoodLog[2].Mood)
}

func TestChatBlankMessageRerenders(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageChat

	view := rerun(t, r, state, Event{Action: ActionChat, Text: "   "})

	require.NotNil(t, view.Chat)
	assert.Nil(t, view.Chat.Last)
	assert.Empty(t, view.Chat.Messages)
	assert.Empty(t, state.Conversation)
	assert.Empty(t, state.MoodLog)
}

func TestGamesRockPaperScissors(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageGames

	view := rerun(t, r, state, Event{Action: ActionPlayRPS, Move: "paper"})
	require.NotNil(t, view.Games.RPS)
	require.NotNil(t, view.Games.RPS.Last)
	assert.Equal(t, game.Rock, view.Games.RPS.Last.PlayMate)
	assert.Equal(t, game.Win, view.Games.RPS.Last.Outcome)
	assert.Equal(t, []Notice{{Level: NoticeSuccess, Text: "You win! 🎉"}}, view.Notices)

	view = rerun(t, r, state, Event{Action: ActionPlayRPS, Move: "✌️"})
	assert.Equal(t, NoticeError, view.Notices[0].Level)

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionPlayRPS, Move: "lizard"})
	require.ErrorIs(t, err, game.ErrUnknownMove)
}

func TestGamesNumberGuesser(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageGames

	view := rerun(t, r, state, Event{Action: ActionSelectGame, Game: session.GameNumberGuesser})
	require.NotNil(t, view.Games.Guesser)
	assert.Nil(t, view.Games.RPS)

	view = rerun(t, r, state, Event{Action: ActionGuessNumber, Guess: 2})
	assert.Equal(t, 1, view.Games.Guesser.Tries)
	assert.Equal(t, NoticeInfo, view.Notices[0].Level)

	view = rerun(t, r, state, Event{Action: ActionGuessNumber, Guess: 4})
	assert.Equal(t, "Correct! You guessed it in 2 tries!", view.Notices[0].Text)
	assert.Zero(t, state.Tries)
	assert.Equal(t, 1, state.SecretNumber)

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionGuessNumber, Guess: 0})
	require.ErrorIs(t, err, game.ErrGuessOutOfRange)
	assert.Zero(t, state.Tries)
}

func TestGamesStoryBuilder(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageGames

	view := rerun(t, r, state, Event{Action: ActionAddStoryLine, Text: "a bunny hopped."})
	require.NotNil(t, view.Games.Story)
	assert.Equal(t, session.GameStoryBuilder, view.Games.Selected)
	assert.Equal(t, "Once upon a time a bunny hopped.", view.Games.Story.Story)

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionSelectGame, Game: "chess"})
	require.ErrorIs(t, err, session.ErrUnknownGame)
	assert.Equal(t, session.GameStoryBuilder, state.Game)
}

func tinyPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDrawPage(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageDraw

	img := tinyPNG(t)
	for i := 0; i < 4; i++ {
		view := rerun(t, r, state, Event{Action: ActionSaveDrawing, Image: img})
		assert.Equal(t, drawing.SavedMessage, view.Notices[0].Text)
	}

	view := rerun(t, r, state, Event{})
	require.NotNil(t, view.Draw)
	assert.True(t, view.Draw.Available)
	assert.Len(t, view.Draw.Drawings, RecentDrawings)
	assert.Len(t, state.Drawings, 4)
	assert.Equal(t, "freedraw", view.Draw.Canvas.Mode)
}

func TestDrawPageUnavailable(t *testing.T) {
	r := newTestRouter(t, false)
	state := newState()
	state.Page = session.PageDraw

	view := rerun(t, r, state, Event{})
	assert.False(t, view.Draw.Available)
	assert.Equal(t, []Notice{{Level: NoticeError, Text: drawing.UnavailableMessage}}, view.Notices)

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionSaveDrawing, Image: tinyPNG(t)})
	require.ErrorIs(t, err, drawing.ErrDrawingUnavailable)
	assert.Empty(t, state.Drawings)
}

func TestFeelingsJournal(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageFeelings

	view := rerun(t, r, state, Event{Action: ActionSaveJournal, Face: "😞", Notes: "lost my toy"})
	assert.Equal(t, "Entry saved!", view.Notices[0].Text)
	require.Len(t, view.Feelings.Recent, 1)
	assert.Equal(t, "2024-06-01: 😞 - lost my toy", view.Feelings.Recent[0].Line)
	assert.Equal(t, "now", view.Feelings.Recent[0].Age)
	assert.Equal(t, mood.Sad, state.MoodLog[0].Mood)
	assert.Equal(t, session.SourceJournal, state.MoodLog[0].Source)

	_, err := r.Rerun(context.Background(), state, Event{Action: ActionSaveJournal, Face: "🤖"})
	require.ErrorIs(t, err, ErrUnknownFace)
	assert.Len(t, state.MoodLog, 1)
}

func TestFeelingsListsChatMoods(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.LogMood(session.MoodEntry{
		Timestamp: testNow.Add(-2 * time.Hour),
		Mood:      mood.Happy,
		Source:    session.SourceChat,
		Message:   "yay",
	})
	state.Page = session.PageFeelings

	view := rerun(t, r, state, Event{})
	require.Len(t, view.Feelings.Recent, 1)
	assert.Equal(t, "2024-06-01: happy - yay", view.Feelings.Recent[0].Line)
	assert.Equal(t, "2 hours ago", view.Feelings.Recent[0].Age)
	assert.Len(t, view.Feelings.Faces, 5)
}

func TestParentDashboard(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()
	state.Page = session.PageParent

	view := rerun(t, r, state, Event{})
	assert.Equal(t, []Notice{
		{Level: NoticeInfo, Text: "No conversation history yet."},
		{Level: NoticeInfo, Text: "No mood data available."},
	}, view.Notices)
	assert.Empty(t, view.Parent.Conversation)
	assert.Nil(t, view.Parent.MoodCounts)

	state.Page = session.PageChat
	rerun(t, r, state, Event{Action: ActionChat, Text: "I'm sad"})
	state.Page = session.PageFeelings
	rerun(t, r, state, Event{Action: ActionSaveJournal, Face: "🎉"})

	view = rerun(t, r, state, Event{Action: ActionNavigate, Page: session.PageParent})
	assert.Empty(t, view.Notices)
	assert.Equal(t, []string{"User: I'm sad", "Assistant: " + companion.ReplySad}, view.Parent.Conversation)
	assert.Equal(t, []dashboard.MoodCount{
		{Mood: mood.Sad, Count: 1},
		{Mood: mood.Happy, Count: 1},
		{Mood: mood.Neutral, Count: 0},
	}, view.Parent.MoodCounts)
	assert.Equal(t, 2, view.Parent.MoodTotal)
}

func TestAboutPage(t *testing.T) {
	r := newTestRouter(t, true)
	state := newState()

	view := rerun(t, r, state, Event{Action: ActionNavigate, Page: session.PageAbout})
	require.NotNil(t, view.About)
	assert.Contains(t, string(view.About.HTML), "Your Safe Digital Companion")
}

func TestParseFace(t *testing.T) {
	f, err := ParseFace(" 🎉 ")
	require.NoError(t, err)
	assert.Equal(t, mood.Happy, f.Mood)
}
