// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// api.go - Constructor type and the BuildGraph entry point.

package builder

import (
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// Constructor mutates g according to cfg. Constructors are composable:
// BuildGraph applies them in order to the same graph.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a graph from gopts and applies every constructor in order.
//
// Errors:
//   - ErrConstructFailed for a nil constructor.
//   - Whatever the constructors return, wrapped with "BuildGraph".
//
// Complexity: sum of the constructors' costs.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	if err := Apply(g, bopts, cons...); err != nil {
		return nil, err
	}

	return g, nil
}

// Apply runs constructors against an existing graph, e.g. to overlay a hub on
// top of a random background.
func Apply(g *core.Graph, bopts []BuilderOption, cons ...Constructor) error {
	if g == nil {
		return fmt.Errorf("BuildGraph: nil graph: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return nil
}
