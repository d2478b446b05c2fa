// Package seeds - RNG utilities behind the one-shot seed permutation.
//
// Goals:
//   - Determinism: same seed ⇒ identical permutation across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independent streams for epochs and shards via DeriveSeed.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines; derive one stream per worker instead.
package seeds

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
//
// Use it to give every epoch (stream = epoch number) or worker (stream = rank)
// its own decorrelated permutation while staying reproducible from one base seed.
// The constants are the SplitMix64 increment and finalizer multipliers.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// shuffleInPlace performs an in-place Fisher–Yates shuffle of a using rng.
// If rng==nil, the deterministic default stream is used (seed==0 policy).
//
// Complexity: O(n) time, O(1) extra space.
func shuffleInPlace[T any](a []T, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	r := rng
	if r == nil {
		r = rngFromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
