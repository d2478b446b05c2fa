// Package core provides the thread-safe in-memory Graph that backs the
// degree-balanced planners in this module.
//
// The Graph G = (V,E) supports a small, composable set of behaviors:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Global vs. per-edge orientation in “mixed” graphs (WithMixedEdges + WithEdgeDirected)
//   - Weighted vs. unweighted edges (WithWeighted)
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - A maintained in-degree index: InDegree(id) is O(1), InDegrees(ids) is O(len(ids)).
//
// In-degree policy:
//
//	directed   u→v : +1 to v
//	undirected u–v : +1 to u and +1 to v (each endpoint receives the edge)
//	self-loop  v–v : +1 to v, regardless of direction
//
// The policy mirrors how message-passing frameworks count incoming messages:
// an undirected edge delivers one message to each endpoint, a loop delivers one.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error          // O(1)
//	HasVertex(id string) bool           // O(1)
//	RemoveVertex(id string) error       // O(E)
//
//	// Edge lifecycle
//	AddEdge(from,to string, weight int64, opts ...EdgeOption) (edgeID string, err error) // O(1)†
//	RemoveEdge(edgeID string) error     // O(1)
//	HasEdge(from,to string) bool        // O(1)
//
//	// Query
//	Vertices() []string                 // O(V·log V)
//	Edges() []*Edge                     // O(E·log E)
//	InEdges(id string) ([]*Edge, error) // O(E) scan, sorted by Edge.ID
//
//	// Degrees
//	InDegree(id string) (int64, error)      // O(1)
//	InDegrees(ids []string) ([]int64, error) // O(n), satisfies degree.Lookup[string]
//
//	// Maintenance
//	Clone() *Graph
//	Clear()
//
// † amortized
//
// Concurrency: muVert guards the vertex catalog, muEdgeAdj guards edges,
// adjacency and the in-degree index. Lock order is always muVert → muEdgeAdj.
package core
