// Package degbatch plans mini-batches whose cost is balanced by in-degree
// rather than by seed count.
//
// 🚀 What is degbatch?
//
//	Graph workloads that aggregate over in-neighbours cost roughly the sum of
//	the in-degrees of their seed vertices. Fixed-size batches over a skewed
//	graph therefore swing from trivial to out-of-memory. degbatch cuts the seed
//	sequence into contiguous batches bounded by two caps:
//		• MaxNode – at most this many seeds per batch
//		• MaxEdge – at most this much total in-degree per batch
//	and takes the longest prefix that honours both, in O(log MaxNode) per batch.
//
// Under the hood, everything is organized under these packages:
//
//	core/     - thread-safe Graph with an O(1) in-degree index
//	builder/  - deterministic Star, Path, RandomSparse, PreferentialAttachment graphs
//	seeds/    - seed order: one-shot seeded shuffle, per-worker shards
//	degree/   - prefix-sum degree index with an unreachable sentinel
//	batch/    - Planner: boundary search, budgets, rollback, iterators
//	loader/   - epochs, samplers (one or many hops), zerolog logging
//	cmd/degbatch - CLI: edge list or synthetic graph in, JSON lines out
//
// Quick example:
//
//	degrees 4 4 4 4 1 1 1, MaxNode=5, MaxEdge=4
//	→ [A] [B] [C] [D] [E F G]
//
//	p, _ := batch.New(ids, g, 5, 4)
//	for b := range p.All() {
//	    process(b)
//	}
//
// Installation:
//
//	go get github.com/katalvlaran/degbatch
package degbatch
