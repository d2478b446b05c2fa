// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// impl_star.go - Star(n): one hub, n-1 leaves.

package builder

import (
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// Star returns a Constructor for a star with n vertices: the hub
// CenterVertexID and n-1 leaves idFn(1..n-1), every leaf linked leaf→hub.
// On a directed graph the hub's in-degree is n-1 and every leaf's is 0,
// the most skewed profile a planner can meet.
//
// Errors: ErrTooFewVertices if n < MinStarNodes.
// Complexity: O(n).
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinStarNodes {
			return fmt.Errorf("%s: n=%d < %d: %w", MethodStar, n, MinStarNodes, ErrTooFewVertices)
		}
		if err := g.AddVertex(CenterVertexID); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w", MethodStar, CenterVertexID, err)
		}

		var (
			i    int
			leaf string
			err  error
		)
		for i = 1; i < n; i++ {
			leaf = cfg.idFn(i)
			if _, err = g.AddEdge(leaf, CenterVertexID, cfg.edgeWeight(g.Weighted())); err != nil {
				return fmt.Errorf("%s: AddEdge(%s→%s): %w", MethodStar, leaf, CenterVertexID, err)
			}
		}

		return nil
	}
}
