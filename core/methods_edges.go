// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/GetEdge/Edges/EdgeCount/InEdges,
//       plus adjacency and in-degree bookkeeping helpers. Also: nextEdgeID().
// Determinism:
//   - Edges() and InEdges() return edges sorted by Edge.ID asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// AddEdge creates a new edge, optionally directed in a mixed graph.
//
// Steps:
//  1. Validate IDs, weight, loops; reject per-edge options without mixed mode.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, check multi-edge constraint.
//  4. Generate eid atomically, build Edge, apply opts.
//  5. Store in g.edges, link adjacency (mirror when undirected).
//  6. Update the in-degree index.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight int64, opts ...EdgeOption) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if !g.weighted && weight != 0 {
		return "", ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if len(opts) > 0 && !g.allowMixed {
		return "", ErrMixedEdgesNotAllowed
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !g.allowMulti {
		if inner := g.adjacencyList[from][to]; len(inner) > 0 {
			return "", ErrMultiEdgeNotAllowed
		}
	}

	eid := nextEdgeID(g)
	e := &Edge{ID: eid, From: from, To: to, Weight: weight, Directed: g.directed}
	var opt EdgeOption
	for _, opt = range opts {
		opt(e)
	}

	g.edges[eid] = e
	ensureAdjacency(g, from, to)
	g.adjacencyList[from][to][eid] = struct{}{}
	if !e.Directed && from != to {
		ensureAdjacency(g, to, from)
		g.adjacencyList[to][from][eid] = struct{}{}
	}
	indexEdge(g, e)

	return eid, nil
}

// RemoveEdge deletes one edge, its mirror and its in-degree contribution.
// Complexity: O(1) removal + cleanup in degenerate cases.
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	removeAdjacency(g, e)
	unindexEdge(g, e)

	return nil
}

// HasEdge reports whether at least one edge from→to exists.
// Undirected edges are mirrored, so HasEdge works both ways for them.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adjacencyList[from][to]) > 0
}

// GetEdge returns the Edge with the given ID or ErrEdgeNotFound.
// The returned *Edge must be treated as read-only.
func (g *Graph) GetEdge(edgeID string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[edgeID]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// Edges returns all edges sorted by Edge.ID asc.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	var e *Edge
	for _, e = range g.edges {
		out = append(out, e)
	}
	sortEdgesByID(out)

	return out
}

// EdgeCount returns total number of edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// InEdges returns every edge that delivers into id, sorted by Edge.ID asc.
//
// An undirected edge u–id is reported once, with its stored orientation;
// callers that need the message source should take the endpoint that is not id
// (or id itself for a loop). len(InEdges(id)) == InDegree(id).
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(V + d·log d), where d is the in-degree of id.
func (g *Graph) InEdges(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, g.inDegree[id])
	var (
		toMap map[string]map[string]struct{}
		eid   string
	)
	for _, toMap = range g.adjacencyList {
		for eid = range toMap[id] {
			out = append(out, g.edges[eid])
		}
	}
	sortEdgesByID(out)

	return out, nil
}

// sortEdgesByID orders edges by their textual ID.
func sortEdgesByID(es []*Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID < es[j].ID })
}

// indexEdge adds e's contribution to the in-degree index.
// Must be called under muEdgeAdj write lock.
func indexEdge(g *Graph, e *Edge) {
	g.inDegree[e.To]++
	if !e.Directed && e.From != e.To {
		g.inDegree[e.From]++
	}
}

// unindexEdge reverses indexEdge. Slots of vertices already removed are left untouched.
// Must be called under muEdgeAdj write lock.
func unindexEdge(g *Graph, e *Edge) {
	if _, ok := g.inDegree[e.To]; ok {
		g.inDegree[e.To]--
	}
	if !e.Directed && e.From != e.To {
		if _, ok := g.inDegree[e.From]; ok {
			g.inDegree[e.From]--
		}
	}
}

// ensureAdjacency creates the nested adjacency buckets for from→to.
// Must be called under muEdgeAdj write lock.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacencyList[from] == nil {
		g.adjacencyList[from] = make(map[string]map[string]struct{})
	}
	if g.adjacencyList[from][to] == nil {
		g.adjacencyList[from][to] = make(map[string]struct{})
	}
}

// removeAdjacency removes e.ID from the from→to bucket and, for undirected
// non-loop edges, from the mirrored bucket. Empty buckets are pruned.
// Must be called under muEdgeAdj write lock.
func removeAdjacency(g *Graph, e *Edge) {
	if m := g.adjacencyList[e.From][e.To]; m != nil {
		delete(m, e.ID)
		if len(m) == 0 {
			delete(g.adjacencyList[e.From], e.To)
		}
	}
	if !e.Directed && e.From != e.To {
		if m := g.adjacencyList[e.To][e.From]; m != nil {
			delete(m, e.ID)
			if len(m) == 0 {
				delete(g.adjacencyList[e.To], e.From)
			}
		}
	}
}

// cleanupAdjacency prunes empty nested buckets after bulk removals.
// Top-level entries of live vertices are kept so AddEdge never re-bootstraps them.
// Must be called under muEdgeAdj write lock.
func cleanupAdjacency(g *Graph) {
	for u, toMap := range g.adjacencyList {
		for v, edgeSet := range toMap {
			if len(edgeSet) == 0 {
				delete(toMap, v)
			}
		}
		if _, live := g.vertices[u]; !live && len(toMap) == 0 {
			delete(g.adjacencyList, u)
		}
	}
}

// nextEdgeID returns a new unique textual edge ID ("e" + decimal).
// Safe for concurrent callers; the counter is advanced atomically.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}
