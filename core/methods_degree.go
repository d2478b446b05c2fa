// SPDX-License-Identifier: MIT
//
// File: methods_degree.go
// Role: In-degree queries backed by the index maintained in methods_edges.go.
// Policy:
//   - No scans: every per-vertex answer is a single map read.
//   - InDegrees is the batched form consumed by degree.Build; its method set
//     matches degree.Lookup[string] so a *Graph can be passed directly.

package core

import "fmt"

// InDegree returns the number of edges delivering into id.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) InDegree(id string) (int64, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	d, ok := g.inDegree[id]
	if !ok {
		return 0, ErrVertexNotFound
	}

	return d, nil
}

// InDegrees returns the in-degree of every id, in the order given.
//
// Implementation:
//   - Stage 1: Take one read lock for the whole batch so the answer is a
//     consistent snapshot even under concurrent mutation.
//   - Stage 2: Resolve each id; the first unknown id aborts the batch.
//
// Returns:
//   - []int64 of len(ids); nil on error (no partial result).
//
// Errors:
//   - ErrEmptyVertexID / ErrVertexNotFound, wrapped with the offending position.
//
// Complexity:
//   - Time O(len(ids)), Space O(len(ids)).
func (g *Graph) InDegrees(ids []string) ([]int64, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]int64, len(ids))
	var (
		i  int
		id string
		d  int64
		ok bool
	)
	for i, id = range ids {
		if id == "" {
			return nil, fmt.Errorf("InDegrees: ids[%d]: %w", i, ErrEmptyVertexID)
		}
		if d, ok = g.inDegree[id]; !ok {
			return nil, fmt.Errorf("InDegrees: ids[%d]=%q: %w", i, id, ErrVertexNotFound)
		}
		out[i] = d
	}

	return out, nil
}

// MaxInDegree returns the largest in-degree in the graph and one vertex that
// attains it (the lexicographically smallest on ties). Empty graph ⇒ ("", 0).
// Complexity: O(V).
func (g *Graph) MaxInDegree() (string, int64) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var (
		best   string
		bestD  int64
		id     string
		d      int64
		picked bool
	)
	for id, d = range g.inDegree {
		if !picked || d > bestD || (d == bestD && id < best) {
			best, bestD, picked = id, d, true
		}
	}

	return best, bestD
}
