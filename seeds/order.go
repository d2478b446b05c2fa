// SPDX-License-Identifier: MIT
// Package: degbatch/seeds
//
// order.go - the seed order a planner walks, and per-worker sharding.
//
// Contract:
//   - Build always returns a fresh slice; the caller's input is never mutated
//     and the result is owned exclusively by whoever plans over it.
//   - Shuffling happens here, once, before any degree index exists. There is
//     no per-epoch shuffle hook: a new epoch means a new Build.
//   - Options record violations; Build surfaces them as ErrOptionViolation.

package seeds

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors for seed ordering.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("seeds: invalid option supplied")

	// ErrInvalidShard is returned when rank/world do not describe a shard.
	ErrInvalidShard = errors.New("seeds: invalid shard")
)

// Option configures Build via functional arguments.
type Option func(*Options)

// Options holds the resolved ordering policy.
type Options struct {
	// Shuffle requests a uniform random permutation of the input.
	Shuffle bool

	// Rand is the permutation source; nil means "seeded from Seed".
	Rand *rand.Rand

	// Seed feeds the default source when Rand is nil (0 ⇒ fixed default seed).
	Seed int64

	err error
}

// DefaultOptions returns the identity ordering: no shuffle, seed 0.
func DefaultOptions() Options {
	return Options{}
}

// WithShuffle toggles the one-shot uniform permutation.
func WithShuffle(on bool) Option {
	return func(o *Options) { o.Shuffle = on }
}

// WithSeed fixes the permutation seed for reproducible shuffles.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithRand supplies an explicit RNG. A nil RNG is recorded as a violation.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r == nil {
			o.err = fmt.Errorf("%w: WithRand(nil)", ErrOptionViolation)
			return
		}
		o.Rand = r
	}
}

// Resolve applies opts over DefaultOptions and reports the first violation.
func Resolve(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.err
}

// Build returns the seed sequence for one pass.
//
// Implementation:
//   - Stage 1: Resolve options.
//   - Stage 2: Copy ids (exclusive ownership of the result).
//   - Stage 3: If Shuffle, apply one Fisher–Yates pass from Rand or Seed.
//
// Errors:
//   - ErrOptionViolation.
//
// Complexity:
//   - Time O(N), Space O(N).
func Build[T any](ids []T, opts ...Option) ([]T, error) {
	o, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(ids))
	copy(out, ids)
	if o.Shuffle {
		r := o.Rand
		if r == nil {
			r = rngFromSeed(o.Seed)
		}
		shuffleInPlace(out, r)
	}

	return out, nil
}

// Shard returns the contiguous slice of ids owned by worker rank out of world.
//
// The first len(ids)%world shards receive one extra element, so shard sizes
// differ by at most one and the union over all ranks is exactly ids, in order.
// The result is a fresh copy.
//
// Errors:
//   - ErrInvalidShard: world < 1 or rank outside [0, world).
//
// Complexity: O(len(ids)/world).
func Shard[T any](ids []T, rank, world int) ([]T, error) {
	if world < 1 || rank < 0 || rank >= world {
		return nil, fmt.Errorf("%w: rank=%d world=%d", ErrInvalidShard, rank, world)
	}
	n := len(ids)
	base, extra := n/world, n%world

	start := rank*base + min(rank, extra)
	size := base
	if rank < extra {
		size++
	}

	out := make([]T, size)
	copy(out, ids[start:start+size])

	return out, nil
}
