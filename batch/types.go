// SPDX-License-Identifier: MIT
// Package: degbatch/batch
//
// types.go - sentinel errors and the Budget value type.

package batch

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/degbatch/degree"
)

// Sentinel errors for planning.
var (
	// ErrDone signals the end of a pass. It is a control signal, not a failure.
	ErrDone = errors.New("batch: pass exhausted")

	// ErrInvalidBudget is returned when MaxNode or MaxEdge is out of range.
	ErrInvalidBudget = errors.New("batch: invalid budget")

	// ErrInvalidRollback is returned when a rollback would move the cursor
	// before the start of the pass (or is negative).
	ErrInvalidRollback = errors.New("batch: invalid rollback")

	// ErrIndexMismatch is returned when a PrefixSum does not describe the order.
	ErrIndexMismatch = errors.New("batch: degree index does not match seed order")
)

// Budget bounds a single batch.
type Budget struct {
	// MaxNode is the largest number of seeds in one batch (≥ 1).
	MaxNode int

	// MaxEdge is the largest total in-degree of one batch (1 ≤ MaxEdge ≤ degree.MaxBudget).
	// A lone seed heavier than MaxEdge is still emitted, alone.
	MaxEdge int64
}

// Validate reports ErrInvalidBudget for non-positive or out-of-range limits.
func (b Budget) Validate() error {
	if err := validateMaxNode(b.MaxNode); err != nil {
		return err
	}
	return validateMaxEdge(b.MaxEdge)
}

func validateMaxNode(v int) error {
	if v <= 0 {
		return fmt.Errorf("%w: MaxNode=%d must be positive", ErrInvalidBudget, v)
	}
	return nil
}

func validateMaxEdge(v int64) error {
	if v <= 0 {
		return fmt.Errorf("%w: MaxEdge=%d must be positive", ErrInvalidBudget, v)
	}
	if v > degree.MaxBudget {
		return fmt.Errorf("%w: MaxEdge=%d exceeds %d", ErrInvalidBudget, v, degree.MaxBudget)
	}
	return nil
}
