// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// impl_random_sparse.go - RandomSparse(n, p): independent Bernoulli(p) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// RandomSparse returns a Constructor that adds n vertices and, for every
// ordered pair (i,j) with i≠j (i<j on undirected graphs), an edge i→j with
// probability p. Pairs are visited in a fixed order so a fixed seed yields a
// fixed graph. In-degrees follow Binomial(n-1, p).
//
// Errors:
//   - ErrTooFewVertices if n < MinRandomNodes.
//   - ErrInvalidProbability if p ∉ [0,1].
//   - ErrNeedRandSource if no RNG was configured.
//
// Complexity: O(n²) draws.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinRandomNodes {
			return fmt.Errorf("%s: n=%d < %d: %w", MethodRandomSparse, n, MinRandomNodes, ErrTooFewVertices)
		}
		if p < MinProbability || p > MaxProbability {
			return fmt.Errorf("%s: p=%.4f: %w", MethodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodRandomSparse, ErrNeedRandSource)
		}

		var (
			i, j     int
			from, to string
			err      error
		)
		for i = 0; i < n; i++ {
			if err = g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", MethodRandomSparse, cfg.idFn(i), err)
			}
		}
		directed := g.Directed()
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if i == j || (!directed && j < i) {
					continue
				}
				if cfg.rng.Float64() >= p {
					continue
				}
				from, to = cfg.idFn(i), cfg.idFn(j)
				if _, err = g.AddEdge(from, to, cfg.edgeWeight(g.Weighted())); err != nil {
					return fmt.Errorf("%s: AddEdge(%s→%s): %w", MethodRandomSparse, from, to, err)
				}
			}
		}

		return nil
	}
}
