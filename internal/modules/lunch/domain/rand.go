package domain

import "math/rand"

// Rand supplies the random draw used to pick a restaurant when a session
// ends. Tests inject fixed sources; production uses the locked global
// math/rand source, which is safe for concurrent use.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n)
}

func DefaultRand() Rand {
	return globalRand{}
}
