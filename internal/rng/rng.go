// Package rng abstracts the source of randomness so games can be dealt from
// a deterministic sequence in tests.
package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}
