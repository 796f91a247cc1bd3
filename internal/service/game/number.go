package game

import (
	"errors"
	"fmt"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

var ErrGuessOutOfRange = errors.New("guess out of range")

// Secret number bounds, inclusive.
const (
	MinNumber = 1
	MaxNumber = 10
)

// GuessResult describes one guess.
type GuessResult struct {
	Guess   int    `json:"guess"`
	Correct bool   `json:"correct"`
	Tries   int    `json:"tries"`
	Message string `json:"message"`
}

// NumberGuesser checks guesses against the session's secret.
type NumberGuesser struct {
	intn Intn
}

// NewNumberGuesser returns a guesser drawing secrets with intn.
func NewNumberGuesser(intn Intn) *NumberGuesser {
	return &NumberGuesser{intn: orDefault(intn)}
}

// NewSecret draws a secret in [MinNumber, MaxNumber].
func (g *NumberGuesser) NewSecret() int {
	return MinNumber + g.intn(MaxNumber-MinNumber+1)
}

// Guess counts the try and compares against the secret. A correct guess
// redraws the secret and resets the counter; Tries in the result is the count
// that led to it.
func (g *NumberGuesser) Guess(state *session.State, guess int) (GuessResult, error) {
	if guess < MinNumber || guess > MaxNumber {
		return GuessResult{}, fmt.Errorf("%w: %d not in [%d,%d]", ErrGuessOutOfRange, guess, MinNumber, MaxNumber)
	}

	state.Tries++
	if guess != state.SecretNumber {
		return GuessResult{Guess: guess, Tries: state.Tries, Message: "Try again!"}, nil
	}

	result := GuessResult{
		Guess:   guess,
		Correct: true,
		Tries:   state.Tries,
		Message: fmt.Sprintf("Correct! You guessed it in %d tries!", state.Tries),
	}
	state.SecretNumber = g.NewSecret()
	state.Tries = 0
	return result, nil
}
