// SPDX-License-Identifier: MIT
// Package: degbatch/loader
//
// options.go - functional options for New.

package loader

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Defaults applied when the corresponding option is absent.
const (
	DefaultMaxNode       = 1024
	DefaultMaxEdge int64 = 1 << 16
)

// Option configures a Loader via functional arguments.
type Option func(*options)

type options struct {
	maxNode int
	maxEdge int64
	shuffle bool
	seed    int64
	rank    int
	world   int
	log     zerolog.Logger

	err error
}

func defaultOptions() options {
	return options{
		maxNode: DefaultMaxNode,
		maxEdge: DefaultMaxEdge,
		world:   1,
		log:     zerolog.Nop(),
	}
}

// WithMaxNode sets the initial per-batch seed cap.
func WithMaxNode(n int) Option {
	return func(o *options) { o.maxNode = n }
}

// WithMaxEdge sets the initial per-batch in-degree cap.
func WithMaxEdge(e int64) Option {
	return func(o *options) { o.maxEdge = e }
}

// WithShuffle permutes the seed order at the start of every epoch.
func WithShuffle(on bool) Option {
	return func(o *options) { o.shuffle = on }
}

// WithSeed fixes the base seed from which per-epoch shuffle streams derive.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithShard restricts the loader to the rank-th of world contiguous shards of
// the seed set, so that several workers can split one pass.
func WithShard(rank, world int) Option {
	return func(o *options) {
		if world < 1 || rank < 0 || rank >= world {
			o.err = fmt.Errorf("%w: WithShard(rank=%d, world=%d)", ErrOptionViolation, rank, world)
			return
		}
		o.rank, o.world = rank, world
	}
}

// WithLogger injects a structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}
