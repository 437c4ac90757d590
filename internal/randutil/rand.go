package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so every caller that passes
// the same seed sees the same card order.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged unless it is zero, in which case a
// time-derived seed is returned. Zero means "random" on the command line.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return int64(mix(uint64(time.Now().UnixNano())) >> 1)
}

// GameSeed derives the seed of the n-th game of a batch. Consecutive games
// get well-separated seeds so neighbouring batches do not overlap.
func GameSeed(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
