// Package batch plans degree-balanced mini-batches over a fixed seed order.
//
// 🚀 What does it do?
//
//	A fixed batch size breaks down on skewed graphs: a handful of hubs in one
//	batch can blow up the sampled subgraph. A Planner instead cuts the seed
//	order into contiguous batches bounded jointly by
//	  • MaxNode - at most this many seeds per batch, and
//	  • MaxEdge - at most this much total in-degree per batch.
//
// How a boundary is found:
//
//	cap = min(start+MaxNode, N)
//	if p[cap]-p[start] ≤ MaxEdge        → end = cap            (fast path, O(1))
//	else binary search largest end in (start, cap] with p[end]-p[start] ≤ MaxEdge
//	     (lo = start+1 only rises on fit, hi only falls on misfit)  O(log MaxNode)
//
// where p is the degree.PrefixSum of the order. The search always returns at
// least start+1: a single seed whose degree alone exceeds MaxEdge is emitted
// as a batch of one rather than dropped or looped on. Progress wins over
// strict edge-budget adherence in that one case.
//
// State and lifecycle:
//
//	SeedSequence, PrefixSum - built once per pass, immutable, shared by clones.
//	Cursor                  - start of the next batch; moves forward on Next,
//	                          backward only through Rollback.
//	Budget                  - (MaxNode, MaxEdge); SetMaxNode/SetMaxEdge take
//	                          effect on the next call, never on a returned batch.
//
// Iteration protocol:
//
//	for {
//	    ids, err := p.Next()
//	    if errors.Is(err, batch.ErrDone) { break }   // end of pass, not a failure
//	    ...
//	}
//
// or, equivalently, `for ids := range p.All()` / `it := p.Iterator(); for it.Next()`.
// A pass is not restartable: once exhausted, the planner keeps reporting
// ErrDone until Rollback or Reset moves the cursor, or a new planner is built.
//
// Concurrency:
//
//	A Planner is owned by one logical consumer; it has no locks. Multi-worker
//	setups give each worker its own planner over its own shard (seeds.Shard).
//	Clone deep-copies Cursor and Budget, so clones advance independently.
//
// Complexity: O(N) build, O(log MaxNode) per batch, O(N + B·log MaxNode) per pass.
package batch
