// Package builder generates deterministic graphs with controlled in-degree
// profiles, used to feed degree-balanced planners in tests, examples and the
// synthetic mode of the degbatch CLI.
//
// Topologies:
//
//	Star(n)                      - hub "Center" receives n-1 edges: one extreme hub.
//	Path(n)                      - 0→1→…→n-1: near-uniform in-degree.
//	RandomSparse(n, p)           - Erdős–Rényi-like: binomial in-degree.
//	PreferentialAttachment(n, m) - Barabási–Albert-like: power-law in-degree,
//	                               the skew that motivates degree balancing.
//
// Usage:
//
//	g, err := builder.BuildGraph(
//	    []core.GraphOption{core.WithDirected(true)},
//	    []builder.BuilderOption{builder.WithSeed(42)},
//	    builder.PreferentialAttachment(10_000, 3),
//	)
//
// Policy:
//   - Constructors validate parameters up front and return sentinel errors
//     (wrapped with the method name); they never panic.
//   - Option constructors panic on meaningless inputs (nil RNG, nil ID scheme).
//   - Same seed and options ⇒ identical graph, edge IDs included.
package builder
