// SPDX-License-Identifier: MIT
// Package: degbatch/degree
//
// prefix.go - PrefixSum construction and O(1) range queries.
//
// Contract:
//   - len(p) == N+2, p[0] == 0, p[N+1] == Sentinel, p non-decreasing.
//   - Build never returns a partial index; on error the result is nil.
//   - The collaborator is called exactly once, with the whole order, and
//     not at all when N == 0.

package degree

import "fmt"

// PrefixSum is the cumulative in-degree over a seed order, terminated by Sentinel.
// It is immutable once built; share it freely between planner clones.
type PrefixSum []int64

// Build computes the PrefixSum of order under lookup.
//
// Implementation:
//   - Stage 1: Reject a nil collaborator; short-circuit N == 0 to [0, Sentinel].
//   - Stage 2: Fetch all degrees in one batched call and check arity.
//   - Stage 3: Accumulate, rejecting negative degrees and any sum that would
//     reach Sentinel.
//
// Errors:
//   - ErrNilLookup.
//   - ErrDegreeLookup, joined with ErrLengthMismatch / ErrNegativeDegree /
//     ErrOverflow or with the collaborator's own error.
//
// Complexity:
//   - Time O(N), Space O(N).
func Build[T any](order []T, lookup Lookup[T]) (PrefixSum, error) {
	if lookup == nil {
		return nil, ErrNilLookup
	}
	n := len(order)
	if n == 0 {
		return PrefixSum{0, Sentinel}, nil
	}

	degs, err := lookup.InDegrees(order)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegreeLookup, err)
	}
	if len(degs) != n {
		return nil, fmt.Errorf("%w: %w: got %d, want %d", ErrDegreeLookup, ErrLengthMismatch, len(degs), n)
	}

	p := make(PrefixSum, n+2)
	var (
		i   int
		d   int64
		acc int64
	)
	for i, d = range degs {
		if d < 0 {
			return nil, fmt.Errorf("%w: %w: position %d has degree %d", ErrDegreeLookup, ErrNegativeDegree, i, d)
		}
		if d > MaxBudget-acc {
			return nil, fmt.Errorf("%w: %w: at position %d", ErrDegreeLookup, ErrOverflow, i)
		}
		acc += d
		p[i+1] = acc
	}
	p[n+1] = Sentinel

	return p, nil
}

// FromDegrees builds a PrefixSum from degrees already in seed order.
// It is Build without a collaborator, for callers that computed degrees elsewhere.
func FromDegrees(degs []int64) (PrefixSum, error) {
	idx := make([]int, len(degs))
	for i := range idx {
		idx[i] = i
	}

	return Build(idx, Slice(degs))
}

// Len returns N, the number of seeds the index covers.
func (p PrefixSum) Len() int { return len(p) - 2 }

// Span returns the total degree of seeds in [start, end).
// Indices must satisfy 0 ≤ start ≤ end ≤ N+1.
func (p PrefixSum) Span(start, end int) int64 { return p[end] - p[start] }

// Degree returns the degree of the seed at position i.
func (p PrefixSum) Degree(i int) int64 { return p[i+1] - p[i] }

// Total returns the degree sum of all N seeds.
func (p PrefixSum) Total() int64 { return p[len(p)-2] }

// Validate checks the structural invariants: length ≥ 2, p[0] == 0,
// non-decreasing, terminal Sentinel. Complexity: O(N).
func (p PrefixSum) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("%w: length %d < 2", ErrMalformed, len(p))
	}
	if p[0] != 0 {
		return fmt.Errorf("%w: p[0]=%d", ErrMalformed, p[0])
	}
	if p[len(p)-1] != Sentinel {
		return fmt.Errorf("%w: missing sentinel", ErrMalformed)
	}
	for i := 1; i < len(p); i++ {
		if p[i] < p[i-1] {
			return fmt.Errorf("%w: p[%d]=%d < p[%d]=%d", ErrMalformed, i, p[i], i-1, p[i-1])
		}
	}

	return nil
}

// errIDOutOfRange reports an integer ID outside a degree table.
func errIDOutOfRange(id, n int) error {
	return fmt.Errorf("degree: id %d out of range [0,%d)", id, n)
}
