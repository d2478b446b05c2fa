// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// impl_path.go - Path(n): idFn(0)→idFn(1)→…→idFn(n-1).

package builder

import (
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// Path returns a Constructor for a simple path of n vertices. On a directed
// graph every vertex but the first has in-degree 1.
//
// Errors: ErrTooFewVertices if n < MinPathNodes.
// Complexity: O(n).
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinPathNodes {
			return fmt.Errorf("%s: n=%d < %d: %w", MethodPath, n, MinPathNodes, ErrTooFewVertices)
		}

		var (
			i        int
			from, to string
			err      error
		)
		for i = 0; i+1 < n; i++ {
			from, to = cfg.idFn(i), cfg.idFn(i+1)
			if _, err = g.AddEdge(from, to, cfg.edgeWeight(g.Weighted())); err != nil {
				return fmt.Errorf("%s: AddEdge(%s→%s): %w", MethodPath, from, to, err)
			}
		}

		return nil
	}
}
