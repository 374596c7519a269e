// RNG utilities for deterministic sample generation.
//
// All randomized visual effects are pure functions of an explicit
// *rand.Rand threaded through every call: same seed, same spec, same tier
// means pixel-identical output. math/rand.Rand is not goroutine-safe, so
// concurrent batch generation derives one independent stream per sample
// instead of sharing a generator.

package captcha

import "math/rand"

// NewRand returns a deterministic *rand.Rand for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed using a SplitMix64-style finalizer, so per-sample streams derived
// from one batch seed are decorrelated regardless of how many workers
// consume them.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveRand returns an independent deterministic stream for the given
// parent seed and stream identifier.
func DeriveRand(parent int64, stream uint64) *rand.Rand {
	return NewRand(DeriveSeed(parent, stream))
}
