// SPDX-License-Identifier: MIT
// Package: degbatch/degree
//
// types.go - collaborator contract, sentinel errors and bounds.

package degree

import (
	"errors"
	"math"
)

// Sentinel is the terminal element of every PrefixSum. It exceeds any
// admissible budget, so a search window that touches it always misfits.
const Sentinel int64 = math.MaxInt64

// MaxBudget is the largest edge budget a planner may accept; it keeps
// Sentinel strictly above every budget.
const MaxBudget int64 = Sentinel - 1

// Sentinel errors for index construction.
var (
	// ErrDegreeLookup indicates the degree collaborator failed for the pass.
	ErrDegreeLookup = errors.New("degree: degree lookup failed")

	// ErrLengthMismatch indicates the collaborator answered with the wrong arity.
	ErrLengthMismatch = errors.New("degree: lookup returned wrong number of degrees")

	// ErrNegativeDegree indicates the collaborator produced a negative degree.
	ErrNegativeDegree = errors.New("degree: negative degree")

	// ErrOverflow indicates the cumulative degree does not fit below Sentinel.
	ErrOverflow = errors.New("degree: cumulative degree overflow")

	// ErrNilLookup indicates Build was called with a nil collaborator.
	ErrNilLookup = errors.New("degree: lookup is nil")

	// ErrMalformed indicates a PrefixSum violates its structural invariants.
	ErrMalformed = errors.New("degree: malformed prefix sum")
)

// Lookup is the batched degree collaborator: one call per pass, degrees
// returned in the order of ids. *core.Graph satisfies Lookup[string].
type Lookup[T any] interface {
	InDegrees(ids []T) ([]int64, error)
}

// LookupFunc adapts a plain batched function to Lookup.
type LookupFunc[T any] func(ids []T) ([]int64, error)

// InDegrees calls f(ids).
func (f LookupFunc[T]) InDegrees(ids []T) ([]int64, error) { return f(ids) }

// PerID adapts a single-ID degree function to Lookup. The first failing id
// aborts the batch.
type PerID[T any] func(id T) (int64, error)

// InDegrees resolves every id in order.
func (f PerID[T]) InDegrees(ids []T) ([]int64, error) {
	out := make([]int64, len(ids))
	var (
		i   int
		err error
	)
	for i = range ids {
		if out[i], err = f(ids[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Slice serves degrees from a precomputed table indexed by integer IDs,
// the usual shape when node IDs are dense handles into a degree array.
type Slice []int64

// InDegrees returns s[id] for each id; out-of-range ids are rejected.
func (s Slice) InDegrees(ids []int) ([]int64, error) {
	out := make([]int64, len(ids))
	var i, id int
	for i, id = range ids {
		if id < 0 || id >= len(s) {
			return nil, errIDOutOfRange(id, len(s))
		}
		out[i] = s[id]
	}

	return out, nil
}
