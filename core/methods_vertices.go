// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - Vertex catalog protected by muVert.
//   - Adjacency bootstrap and in-degree slots under muEdgeAdj.
package core

import "sort"

// AddVertex inserts a vertex if missing (idempotent).
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyVertexID).
//   - Stage 2: Under muVert write lock, check presence; if missing, register it.
//   - Stage 3: Under muEdgeAdj write lock, bootstrap the adjacency bucket and
//     a zero in-degree slot so InDegree never reports a registered vertex as missing.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.vertices[id]; exists {
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Metadata: make(map[string]interface{})}

	g.muEdgeAdj.Lock()
	if g.adjacencyList[id] == nil {
		g.adjacencyList[id] = make(map[string]map[string]struct{})
	}
	g.inDegree[id] = 0
	g.muEdgeAdj.Unlock()

	return nil
}

// HasVertex reports whether the vertex ID exists (empty ID ⇒ false).
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// RemoveVertex deletes a vertex and all incident edges (directed and undirected).
//
// Implementation:
//   - Stage 1: Validate non-empty ID.
//   - Stage 2: Acquire muVert then muEdgeAdj write locks.
//   - Stage 3: Scan the edge catalog once; unlink and unindex every incident edge,
//     which also decrements the in-degree of the surviving endpoint.
//   - Stage 4: Drop the vertex, its adjacency bucket and its in-degree slot.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity:
//   - Time O(E), Space O(1) extra.
func (g *Graph) RemoveVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, exists := g.vertices[id]; !exists {
		return ErrVertexNotFound
	}

	var eid string
	var e *Edge
	for eid, e = range g.edges {
		if e.From == id || e.To == id {
			removeAdjacency(g, e)
			unindexEdge(g, e)
			delete(g.edges, eid)
		}
	}

	delete(g.vertices, id)
	delete(g.adjacencyList, id)
	delete(g.inDegree, id)
	cleanupAdjacency(g)

	return nil
}

// Vertices returns all vertex IDs in lexicographic ascending order.
// Complexity: O(V log V) time, O(V) space.
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	ids := make([]string, 0, len(g.vertices))
	var id string
	for id = range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// VertexCount returns the number of vertices.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}
