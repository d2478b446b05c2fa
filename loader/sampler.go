// SPDX-License-Identifier: MIT
// Package: degbatch/loader
//
// sampler.go - FullNeighborSampler: one hop, every in-edge.

package loader

import (
	"context"
	"fmt"

	"github.com/katalvlaran/degbatch/core"
)

// FullNeighborSampler builds a single-layer Block containing every in-edge of
// every seed. The number of block edges therefore equals the batch's in-degree
// sum, which is exactly the quantity the planner balances.
type FullNeighborSampler struct{}

// Sample implements Sampler.
//
// Implementation:
//   - Stage 1: seed the source list with the destinations (local index i ↔ seeds[i]).
//   - Stage 2: for each destination, walk core.Graph.InEdges in edge-ID order,
//     resolve the message source (the other endpoint, or itself for a loop) and
//     append unseen sources.
//
// Errors:
//   - ctx.Err() if ctx is done between destinations.
//   - core.ErrVertexNotFound (wrapped with the seed) for unknown seeds.
//
// Complexity: O(B·V + E_b·log d) for B seeds and E_b block edges, dominated by InEdges.
func (FullNeighborSampler) Sample(ctx context.Context, g *core.Graph, seeds []string) (*Block, error) {
	blk := &Block{
		DstNodes: make([]string, len(seeds)),
		SrcNodes: make([]string, len(seeds), 2*len(seeds)),
	}
	copy(blk.DstNodes, seeds)
	copy(blk.SrcNodes, seeds)

	local := make(map[string]int, 2*len(seeds))
	var (
		i, j  int
		id    string
		src   string
		edges []*core.Edge
		e     *core.Edge
		err   error
	)
	for i, id = range seeds {
		if _, dup := local[id]; !dup {
			local[id] = i
		}
	}

	for i, id = range seeds {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if edges, err = g.InEdges(id); err != nil {
			return nil, fmt.Errorf("FullNeighborSampler: seed %q: %w", id, err)
		}
		for _, e = range edges {
			src = e.From
			if src == id {
				src = e.To // undirected edge stored as id–u, or a loop (To == id)
			}
			var ok bool
			if j, ok = local[src]; !ok {
				j = len(blk.SrcNodes)
				local[src] = j
				blk.SrcNodes = append(blk.SrcNodes, src)
			}
			blk.Edges = append(blk.Edges, BlockEdge{Src: j, Dst: i, ID: e.ID})
		}
	}

	return blk, nil
}

// MultiLayerFullNeighborSampler expands the seeds hop by hop: layer 1 is the
// full in-neighbourhood of the seeds, layer k+1 the full in-neighbourhood of
// layer k's sources. The returned block is the outermost hop (its DstNodes are
// the seeds) and Inner links lead inward.
//
// Only the outermost hop is weighed by the planner; inner hops grow with the
// neighbourhood and are not budgeted.
type MultiLayerFullNeighborSampler struct {
	Layers int
}

// Sample implements Sampler.
//
// Errors:
//   - ErrInvalidLayers if Layers < 1.
//   - Whatever FullNeighborSampler returns for any hop.
//
// Complexity: the sum of the per-hop costs; frontiers may grow geometrically.
func (s MultiLayerFullNeighborSampler) Sample(ctx context.Context, g *core.Graph, seeds []string) (*Block, error) {
	if s.Layers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLayers, s.Layers)
	}

	var hop FullNeighborSampler
	outer, err := hop.Sample(ctx, g, seeds)
	if err != nil {
		return nil, err
	}
	cur := outer
	for depth := 2; depth <= s.Layers; depth++ {
		if cur.Inner, err = hop.Sample(ctx, g, cur.SrcNodes); err != nil {
			return nil, fmt.Errorf("layer %d: %w", depth, err)
		}
		cur = cur.Inner
	}

	return outer, nil
}
