// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// config.go - resolved builder configuration and functional options.

package builder

import (
	"math/rand"
	"strconv"
)

// IDFn generates a vertex identifier from its zero-based index.
// It must be pure: the same idx always yields the same string.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal string of idx, e.g. 0→"0", 42→"42".
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// PrefixIDFn returns an IDFn producing prefix+decimal, e.g. "n0", "n1".
func PrefixIDFn(prefix string) IDFn {
	return func(idx int) string { return prefix + strconv.Itoa(idx) }
}

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	idFn     IDFn
	rng      *rand.Rand
	weightFn func(*rand.Rand) int64
}

// defaultConstWeight is the edge weight used on weighted graphs without WithWeightFn.
const defaultConstWeight int64 = 1

// newBuilderConfig applies opts over deterministic defaults (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:     DefaultIDFn,
		weightFn: func(*rand.Rand) int64 { return defaultConstWeight },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// edgeWeight returns the weight for the next edge under the graph's policy.
func (c builderConfig) edgeWeight(weighted bool) int64 {
	if !weighted {
		return 0
	}
	return c.weightFn(c.rng)
}

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the vertex ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG; use it in tests to lock outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn overrides the per-edge weight generator (weighted graphs only).
// Panics on nil.
func WithWeightFn(fn func(*rand.Rand) int64) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}
