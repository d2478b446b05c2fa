// SPDX-License-Identifier: MIT
// Package: degbatch/batch
//
// iterator.go - pull and push iteration over a Planner.
//
// Both forms are lazy (one boundary search per step), hold no buffer beyond
// the planner's own cursor, and share that cursor: budget changes and
// rollbacks made between steps are honored by the very next step.

package batch

import "iter"

// Iterator is a pull-style view over a Planner.
//
//	it := p.Iterator()
//	for it.Next() {
//	    sample(it.Batch())
//	}
type Iterator[T any] struct {
	p   *Planner[T]
	cur []T
}

// Iterator returns a pull iterator driving p.
func (p *Planner[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{p: p}
}

// Next advances to the next batch. It returns false once the pass is exhausted.
func (it *Iterator[T]) Next() bool {
	b, err := it.p.Next()
	if err != nil {
		it.cur = nil
		return false
	}
	it.cur = b
	return true
}

// Batch returns the batch produced by the last successful Next.
func (it *Iterator[T]) Batch() []T { return it.cur }

// Planner exposes the underlying planner for budget changes and rollback.
func (it *Iterator[T]) Planner() *Planner[T] { return it.p }

// All returns a single-use push iterator over the remaining batches.
// Ranging over it twice without Reset yields nothing the second time.
func (p *Planner[T]) All() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for {
			b, err := p.Next()
			if err != nil {
				return
			}
			if !yield(b) {
				return
			}
		}
	}
}
