// File: methods_clone.go
// Role: Cloning and clearing graph instances.
// Determinism:
//   - Clone carries over nextEdgeID to keep textual edge IDs monotonic on the clone.
// Concurrency:
//   - Read locks for snapshotting; no mutation of the source graph.

package core

import "sync/atomic"

// Clone returns a deep copy of the Graph: configuration, vertices, edges,
// adjacency and the in-degree index. Vertex Metadata maps are shared.
//
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := &Graph{
		directed:      g.directed,
		weighted:      g.weighted,
		allowMulti:    g.allowMulti,
		allowLoops:    g.allowLoops,
		allowMixed:    g.allowMixed,
		vertices:      make(map[string]*Vertex, len(g.vertices)),
		edges:         make(map[string]*Edge, len(g.edges)),
		adjacencyList: make(map[string]map[string]map[string]struct{}, len(g.adjacencyList)),
		inDegree:      make(map[string]int64, len(g.inDegree)),
	}
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	var (
		id  string
		v   *Vertex
		d   int64
		eid string
		e   *Edge
	)
	for id, v = range g.vertices {
		clone.vertices[id] = &Vertex{ID: v.ID, Metadata: v.Metadata}
		clone.adjacencyList[id] = make(map[string]map[string]struct{})
	}
	for id, d = range g.inDegree {
		clone.inDegree[id] = d
	}
	for eid, e = range g.edges {
		clone.edges[eid] = &Edge{ID: eid, From: e.From, To: e.To, Weight: e.Weight, Directed: e.Directed}
		ensureAdjacency(clone, e.From, e.To)
		clone.adjacencyList[e.From][e.To][eid] = struct{}{}
		if !e.Directed && e.From != e.To {
			ensureAdjacency(clone, e.To, e.From)
			clone.adjacencyList[e.To][e.From][eid] = struct{}{}
		}
	}

	return clone
}

// Clear resets the graph to an empty state while preserving configuration flags.
// nextEdgeID restarts, so edge IDs resume from "e1".
func (g *Graph) Clear() {
	g.muVert.Lock()
	g.muEdgeAdj.Lock()
	g.vertices = make(map[string]*Vertex)
	g.edges = make(map[string]*Edge)
	g.adjacencyList = make(map[string]map[string]map[string]struct{})
	g.inDegree = make(map[string]int64)
	atomic.StoreUint64(&g.nextEdgeID, 0)
	g.muEdgeAdj.Unlock()
	g.muVert.Unlock()
}
