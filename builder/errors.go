// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w` (method name, parameters).

package builder

import "errors"

// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor ran without an RNG
// (supply WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a constructor could not complete (nil
// constructor, nil graph, or a core mutation failure).
var ErrConstructFailed = errors.New("builder: construction failed")
