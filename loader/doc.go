// Package loader drives degree-balanced mini-batches over a graph: it owns a
// batch.Planner for the current epoch, hands every planned seed batch to a
// Sampler, and returns the result as a MiniBatch.
//
// Lifecycle:
//
//	l, err := loader.New(g, nids, loader.FullNeighborSampler{},
//	    loader.WithMaxNode(5000), loader.WithMaxEdge(500_000),
//	    loader.WithShuffle(true), loader.WithSeed(42))
//	for epoch := 0; epoch < epochs; epoch++ {
//	    for {
//	        mb, err := l.Next(ctx)
//	        if errors.Is(err, batch.ErrDone) {
//	            break
//	        }
//	        ...
//	    }
//	    if err = l.NewEpoch(); err != nil { ... }
//	}
//
// Budgets changed with ModifyMaxNode/ModifyMaxEdge apply to the next batch and
// persist across epochs. ResetBatchNode moves the cursor back so that seeds
// already returned are planned again, typically right after lowering a budget
// because the previous batch did not fit downstream.
//
// Every epoch builds a fresh seed order (shuffled with a stream derived from
// the base seed and the epoch number) and a fresh degree index over it, so the
// sequence of batches is reproducible for a fixed seed.
//
// A Loader is safe for concurrent use; calls are serialized. The graph must
// not be mutated while an epoch is in flight: the degree index is a snapshot
// taken when the epoch starts.
package loader
