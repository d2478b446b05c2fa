// SPDX-License-Identifier: MIT
// Package: degbatch/loader
//
// loader.go - Loader: epochs, budgets and the Next protocol.

package loader

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/degbatch/batch"
	"github.com/katalvlaran/degbatch/core"
	"github.com/katalvlaran/degbatch/seeds"
)

// Loader plans degree-balanced batches over a graph and samples a Block for each.
type Loader struct {
	mu sync.Mutex

	g       *core.Graph
	nids    []string // this shard's seeds, caller order
	sampler Sampler
	opts    options
	log     zerolog.Logger

	epoch   int
	batches int // batches returned in the current epoch
	planner *batch.Planner[string]
}

// New validates its inputs and prepares epoch 0.
//
// Implementation:
//   - Stage 1: resolve options; reject nil graph/sampler and option violations.
//   - Stage 2: validate the budget and cut this worker's shard of nids.
//   - Stage 3: build the epoch-0 seed order and degree index.
//
// Errors:
//   - ErrNilGraph, ErrNilSampler, ErrOptionViolation.
//   - batch.ErrInvalidBudget for caps out of range.
//   - core.ErrVertexNotFound (wrapped by degree.ErrDegreeLookup) for unknown seeds.
//
// Complexity: O(N) for N seeds in the shard.
func New(g *core.Graph, nids []string, sampler Sampler, opts ...Option) (*Loader, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if sampler == nil {
		return nil, ErrNilSampler
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := (batch.Budget{MaxNode: o.maxNode, MaxEdge: o.maxEdge}).Validate(); err != nil {
		return nil, err
	}

	shard, err := seeds.Shard(nids, o.rank, o.world)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		g:       g,
		nids:    shard,
		sampler: sampler,
		opts:    o,
		log: o.log.With().
			Str("component", "loader").
			Int("rank", o.rank).
			Int("world", o.world).
			Logger(),
	}
	if err = l.startEpoch(0); err != nil {
		return nil, err
	}

	return l, nil
}

// startEpoch builds the seed order and degree index of epoch e and resets
// the batch counter. Caller holds mu (or owns l exclusively).
func (l *Loader) startEpoch(e int) error {
	p, err := batch.New(l.nids, l.g, l.opts.maxNode, l.opts.maxEdge,
		seeds.WithShuffle(l.opts.shuffle),
		seeds.WithSeed(seeds.DeriveSeed(l.opts.seed, uint64(e))),
	)
	if err != nil {
		return fmt.Errorf("loader: epoch %d: %w", e, err)
	}
	l.planner = p
	l.epoch = e
	l.batches = 0

	l.log.Info().
		Int("epoch", e).
		Int("seeds", p.Len()).
		Int64("total_in_degree", p.Weight(0, p.Len())).
		Int("max_node", l.opts.maxNode).
		Int64("max_edge", l.opts.maxEdge).
		Bool("shuffle", l.opts.shuffle).
		Msg("epoch started")

	return nil
}

// Next plans the next batch of the current epoch and samples its Block.
//
// Returns batch.ErrDone (unwrapped) once the epoch is exhausted; call NewEpoch
// to continue. When the sampler fails, the batch's seeds are handed back to
// the planner so that a retry plans them again.
//
// Errors:
//   - batch.ErrDone at end of epoch.
//   - ctx.Err() when ctx is done before planning.
//   - ErrSample wrapping the sampler's error.
func (l *Loader) Next(ctx context.Context) (*MiniBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seedIDs, err := l.planner.Next()
	if err != nil {
		return nil, err
	}
	end := l.planner.Position()
	weight := l.planner.Weight(end-len(seedIDs), end)
	budget := l.planner.Budget()
	if len(seedIDs) == 1 && weight > budget.MaxEdge {
		l.log.Warn().
			Int("epoch", l.epoch).
			Str("seed", seedIDs[0]).
			Int64("in_degree", weight).
			Int64("max_edge", budget.MaxEdge).
			Msg("seed exceeds edge budget on its own")
	}

	blk, err := l.sampler.Sample(ctx, l.g, seedIDs)
	if err != nil {
		// Rollback(len) cannot fail: those seeds were just consumed.
		_ = l.planner.Rollback(len(seedIDs))
		return nil, fmt.Errorf("%w: epoch %d batch %d: %w", ErrSample, l.epoch, l.batches, err)
	}

	mb := &MiniBatch{
		Epoch:  l.epoch,
		Index:  l.batches,
		Seeds:  seedIDs,
		Weight: weight,
		Block:  blk,
	}
	l.batches++

	l.log.Debug().
		Int("epoch", mb.Epoch).
		Int("batch", mb.Index).
		Int("seeds", len(seedIDs)).
		Int64("weight", weight).
		Int("edges", blk.NumEdges()).
		Int("src_nodes", blk.NumSrcNodes()).
		Int("remaining", l.planner.Remaining()).
		Msg("batch ready")

	return mb, nil
}

// All returns a single-use iterator over the rest of the current epoch.
// Iteration stops after the last batch, or after yielding a non-nil error.
func (l *Loader) All(ctx context.Context) iter.Seq2[*MiniBatch, error] {
	return func(yield func(*MiniBatch, error) bool) {
		for {
			mb, err := l.Next(ctx)
			if errors.Is(err, batch.ErrDone) {
				return
			}
			if !yield(mb, err) || err != nil {
				return
			}
		}
	}
}

// NewEpoch starts the next epoch: a fresh seed order (reshuffled when
// shuffling is on) and a fresh degree index, picking up any graph changes
// made since the previous epoch. Budgets carry over. On error the current
// epoch is left untouched.
func (l *Loader) NewEpoch() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.startEpoch(l.epoch + 1)
}

// ModifyMaxNode changes the seed cap for the next batch and every later epoch.
//
// Errors: batch.ErrInvalidBudget if n < 1.
func (l *Loader) ModifyMaxNode(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.planner.SetMaxNode(n); err != nil {
		return err
	}
	l.opts.maxNode = n
	l.log.Info().Int("epoch", l.epoch).Int("max_node", n).Msg("node budget changed")

	return nil
}

// ModifyMaxEdge changes the in-degree cap for the next batch and every later epoch.
//
// Errors: batch.ErrInvalidBudget if e is negative or above degree.MaxBudget.
func (l *Loader) ModifyMaxEdge(e int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.planner.SetMaxEdge(e); err != nil {
		return err
	}
	l.opts.maxEdge = e
	l.log.Info().Int("epoch", l.epoch).Int64("max_edge", e).Msg("edge budget changed")

	return nil
}

// ResetBatchNode moves the cursor back by n seeds so that they are planned
// again. Batch indices keep counting up.
//
// Errors: batch.ErrInvalidRollback if n < 0 or n exceeds the seeds consumed
// in this epoch.
func (l *Loader) ResetBatchNode(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.planner.Rollback(n); err != nil {
		return err
	}
	l.log.Debug().Int("epoch", l.epoch).Int("rollback", n).Int("position", l.planner.Position()).Msg("cursor rolled back")

	return nil
}

// Epoch returns the zero-based number of the current epoch.
func (l *Loader) Epoch() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch
}

// Budget returns the caps in force for the next batch.
func (l *Loader) Budget() batch.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.planner.Budget()
}

// Len returns the number of seeds this loader plans per epoch.
func (l *Loader) Len() int { return len(l.nids) }

// Remaining returns the number of seeds not yet planned in this epoch.
func (l *Loader) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.planner.Remaining()
}
