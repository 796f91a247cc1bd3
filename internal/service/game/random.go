package game

import "math/rand/v2"

// Intn returns a uniformly random int in [0, n).
type Intn func(n int) int

func orDefault(intn Intn) Intn {
	if intn == nil {
		return rand.IntN
	}
	return intn
}
