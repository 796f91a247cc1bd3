package pages

import (
	"context"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
)

// GameOption is one entry of the game picker.
type GameOption struct {
	ID    session.Game `json:"id"`
	Label string       `json:"label"`
}

var gameLabels = map[session.Game]string{
	session.GameRockPaperScissors: "Rock-Paper-Scissors",
	session.GameNumberGuesser:     "Number Guesser",
	session.GameStoryBuilder:      "Story Builder",
}

// MoveOption is a selectable hand.
type MoveOption struct {
	Move   game.Move `json:"move"`
	Symbol string    `json:"symbol"`
}

// RPSView renders rock-paper-scissors.
type RPSView struct {
	Moves []MoveOption      `json:"moves"`
	Last  *game.RoundResult `json:"last,omitempty"`
}

// GuesserView renders the number guesser.
type GuesserView struct {
	Prompt string            `json:"prompt"`
	Min    int               `json:"min"`
	Max    int               `json:"max"`
	Tries  int               `json:"tries"`
	Last   *game.GuessResult `json:"last,omitempty"`
}

// StoryView renders the story builder.
type StoryView struct {
	Story  string `json:"story"`
	Prompt string `json:"prompt"`
}

// GamesView shows the picker and the selected game.
type GamesView struct {
	Games    []GameOption `json:"games"`
	Selected session.Game `json:"selected"`
	RPS      *RPSView     `json:"rps,omitempty"`
	Guesser  *GuesserView `json:"guesser,omitempty"`
	Story    *StoryView   `json:"story,omitempty"`
}

func (r *Router) gamesPage(_ context.Context, state *session.State, evt Event, view *View) error {
	view.Title = Title(session.PageGames)

	var (
		round *game.RoundResult
		guess *game.GuessResult
	)

	switch evt.Action {
	case ActionSelectGame:
		g, err := session.ParseGame(string(evt.Game))
		if err != nil {
			return err
		}
		state.Game = g
	case ActionPlayRPS:
		move, err := game.ParseMove(evt.Move)
		if err != nil {
			return err
		}
		state.Game = session.GameRockPaperScissors
		res := r.deps.RPS.Play(move)
		round = &res
		if res.Outcome == game.Lose {
			view.notify(NoticeError, res.Message)
		} else {
			view.notify(NoticeSuccess, res.Message)
		}
	case ActionGuessNumber:
		res, err := r.deps.Guesser.Guess(state, evt.Guess)
		if err != nil {
			return err
		}
		state.Game = session.GameNumberGuesser
		guess = &res
		if res.Correct {
			view.notify(NoticeSuccess, res.Message)
		} else {
			view.notify(NoticeInfo, res.Message)
		}
	case ActionAddStoryLine:
		state.Game = session.GameStoryBuilder
		game.AppendStory(state, evt.Text)
	}

	games := &GamesView{Selected: state.Game}
	for _, g := range session.Games() {
		games.Games = append(games.Games, GameOption{ID: g, Label: gameLabels[g]})
	}

	switch state.Game {
	case session.GameNumberGuesser:
		games.Guesser = &GuesserView{
			Prompt: "Guess a number between 1 and 10",
			Min:    game.MinNumber,
			Max:    game.MaxNumber,
			Tries:  state.Tries,
			Last:   guess,
		}
	case session.GameStoryBuilder:
		games.Story = &StoryView{
			Story:  state.Story,
			Prompt: "Add the next line to the story:",
		}
	default:
		rps := &RPSView{Last: round}
		for _, m := range game.Moves() {
			rps.Moves = append(rps.Moves, MoveOption{Move: m, Symbol: m.Symbol()})
		}
		games.RPS = rps
	}

	view.Games = games
	return nil
}
