// SPDX-License-Identifier: MIT
// Package: degbatch/batch
//
// planner.go - Planner: cursor, budget and boundary search.
//
// Contract:
//   - The cursor only changes at the end of a successful NextRange/Next,
//     Rollback or Reset; a failed call leaves the planner untouched.
//   - Every returned batch is non-empty and contiguous; consecutive batches
//     tile the seed order with no gaps or overlaps.
//   - Returned slices are capacity-clipped views of the seed order: appending
//     to them never clobbers later seeds. Treat their elements as read-only.

package batch

import (
	"fmt"

	"github.com/katalvlaran/degbatch/degree"
	"github.com/katalvlaran/degbatch/seeds"
)

// Planner walks one seed order and cuts it into degree-balanced batches.
type Planner[T any] struct {
	order  []T              // SeedSequence, immutable for the pass
	prefix degree.PrefixSum // len(order)+2, immutable for the pass
	index  int              // Cursor: start of the next batch, in [0, len(order)]
	budget Budget
}

// NewPlanner wraps an existing seed order and its degree index.
//
// Errors:
//   - ErrInvalidBudget: maxNode/maxEdge out of range.
//   - ErrIndexMismatch: prefix is malformed or not sized for order.
//
// Complexity: O(N) for prefix validation.
func NewPlanner[T any](order []T, prefix degree.PrefixSum, maxNode int, maxEdge int64) (*Planner[T], error) {
	b := Budget{MaxNode: maxNode, MaxEdge: maxEdge}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if prefix.Len() != len(order) {
		return nil, fmt.Errorf("%w: index covers %d seeds, order has %d", ErrIndexMismatch, prefix.Len(), len(order))
	}
	if err := prefix.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexMismatch, err)
	}

	return &Planner[T]{order: order, prefix: prefix, budget: b}, nil
}

// New builds a complete pass: seed order (optionally shuffled once), degree
// index over that order, and a planner at cursor 0.
//
// Implementation:
//   - Stage 1: Validate the budget before any work.
//   - Stage 2: seeds.Build copies (and, if requested, permutes) ids.
//   - Stage 3: degree.Build sums degrees in the final order.
//
// Errors:
//   - ErrInvalidBudget, seeds.ErrOptionViolation, degree.ErrDegreeLookup (and friends).
//
// Complexity: O(N).
func New[T any](ids []T, lookup degree.Lookup[T], maxNode int, maxEdge int64, opts ...seeds.Option) (*Planner[T], error) {
	b := Budget{MaxNode: maxNode, MaxEdge: maxEdge}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	order, err := seeds.Build(ids, opts...)
	if err != nil {
		return nil, err
	}
	prefix, err := degree.Build(order, lookup)
	if err != nil {
		return nil, err
	}

	return &Planner[T]{order: order, prefix: prefix, budget: b}, nil
}

// NextRange plans the next batch and advances the cursor.
// It returns the half-open range [start, end) of the seed order, or ErrDone.
// Complexity: O(log MaxNode).
func (p *Planner[T]) NextRange() (start, end int, err error) {
	if p.index >= len(p.order) {
		return p.index, p.index, ErrDone
	}
	start = p.index
	end = p.findBoundary(start)
	p.index = end

	return start, end, nil
}

// Next plans the next batch, advances the cursor and returns the seeds.
// At the end of the pass it returns (nil, ErrDone).
func (p *Planner[T]) Next() ([]T, error) {
	start, end, err := p.NextRange()
	if err != nil {
		return nil, err
	}

	return p.order[start:end:end], nil
}

// PeekBoundary reports the end the next call to Next would use, without
// moving the cursor. ok is false at the end of the pass.
func (p *Planner[T]) PeekBoundary() (end int, ok bool) {
	if p.index >= len(p.order) {
		return p.index, false
	}
	return p.findBoundary(p.index), true
}

// findBoundary returns the end of the batch starting at start (< N).
//
// Invariants of the search window [lo, hi]:
//   - hi misfits (established by the fast-path check), and only moves down
//     onto misfitting candidates;
//   - lo == start+1 or lo fits, and only moves up onto fitting candidates.
//
// If start+1 itself misfits, every larger end misfits too (degrees are
// non-negative), hi collapses onto lo+1 and start+1 is returned: the lone
// oversized seed still makes progress.
func (p *Planner[T]) findBoundary(start int) int {
	n := len(p.order)
	hi := n
	if p.budget.MaxNode < n-start {
		hi = start + p.budget.MaxNode
	}
	base := p.prefix[start]
	if p.prefix[hi]-base <= p.budget.MaxEdge {
		return hi
	}

	lo := start + 1
	var mid int
	for hi-lo > 1 {
		mid = lo + (hi-lo)/2
		if p.prefix[mid]-base <= p.budget.MaxEdge {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo
}

// SetMaxNode updates the node cap for subsequent batches.
func (p *Planner[T]) SetMaxNode(v int) error {
	if err := validateMaxNode(v); err != nil {
		return err
	}
	p.budget.MaxNode = v
	return nil
}

// SetMaxEdge updates the edge cap for subsequent batches.
func (p *Planner[T]) SetMaxEdge(v int64) error {
	if err := validateMaxEdge(v); err != nil {
		return err
	}
	p.budget.MaxEdge = v
	return nil
}

// SetBudget replaces both caps atomically; on error neither changes.
func (p *Planner[T]) SetBudget(b Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	p.budget = b
	return nil
}

// Rollback moves the cursor back by n seeds so they are planned again,
// typically after a batch proved too large downstream and the budget was
// lowered. The degree index is reused as is.
//
// Errors:
//   - ErrInvalidRollback: n < 0 or n > Position().
func (p *Planner[T]) Rollback(n int) error {
	if n < 0 || n > p.index {
		return fmt.Errorf("%w: n=%d with %d seeds consumed", ErrInvalidRollback, n, p.index)
	}
	p.index -= n
	return nil
}

// Reset rewinds the cursor to the start of the same pass (same order, same index).
// A fresh permutation needs a fresh planner.
func (p *Planner[T]) Reset() { p.index = 0 }

// Clone returns an independent planner at the same cursor and budget.
// The seed order and degree index are immutable and therefore shared.
func (p *Planner[T]) Clone() *Planner[T] {
	c := *p
	return &c
}

// Position returns the cursor: the number of seeds consumed in this pass.
func (p *Planner[T]) Position() int { return p.index }

// Len returns N, the number of seeds in the pass.
func (p *Planner[T]) Len() int { return len(p.order) }

// Remaining returns the number of seeds not yet planned.
func (p *Planner[T]) Remaining() int { return len(p.order) - p.index }

// Budget returns the current caps.
func (p *Planner[T]) Budget() Budget { return p.budget }

// Weight returns the total in-degree of order[start:end].
func (p *Planner[T]) Weight(start, end int) int64 { return p.prefix.Span(start, end) }

// Order returns a copy of the seed order of this pass.
func (p *Planner[T]) Order() []T {
	out := make([]T, len(p.order))
	copy(out, p.order)
	return out
}
