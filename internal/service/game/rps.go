package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMove = errors.New("unknown move")

// Move is a rock-paper-scissors hand.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
)

var symbols = map[Move]string{
	Rock:     "✊",
	Paper:    "✋",
	Scissors: "✌️",
}

// beats[m] is the move m defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Moves lists the hands in display order.
func Moves() []Move {
	return []Move{Rock, Paper, Scissors}
}

// Symbol returns the hand emoji.
func (m Move) Symbol() string {
	return symbols[m]
}

// ParseMove accepts a move name or its emoji.
func ParseMove(raw string) (Move, error) {
	trimmed := strings.TrimSpace(raw)
	for _, m := range Moves() {
		if strings.EqualFold(trimmed, string(m)) || trimmed == m.Symbol() || trimmed == strings.TrimSuffix(m.Symbol(), "\uFE0F") {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMove, raw)
}

// Outcome is the result of one round from the player's point of view.
type Outcome string

const (
	Tie  Outcome = "tie"
	Win  Outcome = "win"
	Lose Outcome = "lose"
)

// Judge applies the win table.
func Judge(player, opponent Move) Outcome {
	switch {
	case player == opponent:
		return Tie
	case beats[player] == opponent:
		return Win
	default:
		return Lose
	}
}

// RoundResult describes one rock-paper-scissors round.
type RoundResult struct {
	Player   Move    `json:"player"`
	PlayMate Move    `json:"playmate"`
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message"`
}

// RockPaperScissors plays rounds against a random opponent.
type RockPaperScissors struct {
	intn Intn
}

// NewRockPaperScissors returns a game drawing PlayMate's hand with intn.
func NewRockPaperScissors(intn Intn) *RockPaperScissors {
	return &RockPaperScissors{intn: orDefault(intn)}
}

// Play draws PlayMate's hand and judges the round.
func (g *RockPaperScissors) Play(player Move) RoundResult {
	moves := Moves()
	opponent := moves[g.intn(len(moves))]
	outcome := Judge(player, opponent)
	return RoundResult{
		Player:   player,
		PlayMate: opponent,
		Outcome:  outcome,
		Message:  outcomeMessage(outcome),
	}
}

func outcomeMessage(o Outcome) string {
	switch o {
	case Tie:
		return "It's a tie!"
	case Win:
		return "You win! 🎉"
	default:
		return "PlayMate wins!"
	}
}
