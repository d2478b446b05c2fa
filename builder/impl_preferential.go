// SPDX-License-Identifier: MIT
// Package: degbatch/builder
//
// impl_preferential.go - PreferentialAttachment(n, m): power-law in-degrees.

package builder

import (
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// PreferentialAttachment returns a Constructor that grows a graph of n
// vertices. Vertex 0 starts alone; every later vertex v links v→t to
// min(m, v) distinct earlier targets t, each chosen with probability
// proportional to 1 + in-degree(t). Early vertices become hubs and the
// in-degree distribution is heavy-tailed.
//
// Implementation:
//   - Stage 1: keep a "ticket" slice where vertex t appears 1+in(t) times.
//   - Stage 2: for each v, draw tickets until m distinct targets are found,
//     then append v once and each chosen target once more.
//
// Errors:
//   - ErrTooFewVertices if n < MinAttachNodes or m < MinAttachEdges.
//   - ErrNeedRandSource if no RNG was configured.
//
// Complexity: O(n·m) expected time, O(n·m) memory for tickets.
func PreferentialAttachment(n, m int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < MinAttachNodes {
			return fmt.Errorf("%s: n=%d < %d: %w", MethodPreferentialAttachment, n, MinAttachNodes, ErrTooFewVertices)
		}
		if m < MinAttachEdges {
			return fmt.Errorf("%s: m=%d < %d: %w", MethodPreferentialAttachment, m, MinAttachEdges, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodPreferentialAttachment, ErrNeedRandSource)
		}

		if err := g.AddVertex(cfg.idFn(0)); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w", MethodPreferentialAttachment, cfg.idFn(0), err)
		}
		tickets := make([]int, 1, n*(m+1))
		// tickets[0] = 0: vertex 0 holds its base ticket.

		var (
			v, t, k, want int
			chosen        []int
			seen          map[int]struct{}
			from, to      string
			err           error
		)
		seen = make(map[int]struct{}, m)
		for v = 1; v < n; v++ {
			want = m
			if v < want {
				want = v
			}
			chosen = chosen[:0]
			clear(seen)
			for len(chosen) < want {
				t = tickets[cfg.rng.Intn(len(tickets))]
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				chosen = append(chosen, t)
			}

			from = cfg.idFn(v)
			for k = 0; k < len(chosen); k++ {
				to = cfg.idFn(chosen[k])
				if _, err = g.AddEdge(from, to, cfg.edgeWeight(g.Weighted())); err != nil {
					return fmt.Errorf("%s: AddEdge(%s→%s): %w", MethodPreferentialAttachment, from, to, err)
				}
				tickets = append(tickets, chosen[k])
			}
			tickets = append(tickets, v)
		}

		return nil
	}
}
