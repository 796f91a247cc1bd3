package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPage = errors.New("unknown page")
	ErrUnknownGame = errors.New("unknown game")
)

// Page identifies one of the views the router can render.
type Page string

const (
	PageMain     Page = "main"
	PageChat     Page = "chat"
	PageGames    Page = "games"
	PageDraw     Page = "draw"
	PageFeelings Page = "feelings"
	PageParent   Page = "parent"
	PageAbout    Page = "about"
)

// Pages lists every page in menu order.
func Pages() []Page {
	return []Page{PageMain, PageChat, PageGames, PageDraw, PageFeelings, PageParent, PageAbout}
}

// ParsePage validates a page identifier.
func ParsePage(raw string) (Page, error) {
	p := Page(strings.TrimSpace(raw))
	for _, known := range Pages() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, raw)
}

// Game is the mini-game shown on the games page.
type Game string

const (
	GameRockPaperScissors Game = "rock-paper-scissors"
	GameNumberGuesser     Game = "number-guesser"
	GameStoryBuilder      Game = "story-builder"
)

// Games lists the selectable games in display order.
func Games() []Game {
	return []Game{GameRockPaperScissors, GameNumberGuesser, GameStoryBuilder}
}

// ParseGame validates a game identifier.
func ParseGame(raw string) (Game, error) {
	g := Game(strings.TrimSpace(raw))
	for _, known := range Games() {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, raw)
}
