package loader_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/degbatch/batch"
	"github.com/katalvlaran/degbatch/builder"
	"github.com/katalvlaran/degbatch/core"
	"github.com/katalvlaran/degbatch/loader"
)

// ExampleLoader walks one epoch over a directed star: the hub's three
// in-edges exceed the edge budget, so it travels alone.
func ExampleLoader() {
	g, err := builder.BuildGraph([]core.GraphOption{core.WithDirected(true)}, nil, builder.Star(4))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	l, err := loader.New(g, g.Vertices(), loader.FullNeighborSampler{},
		loader.WithMaxNode(8), loader.WithMaxEdge(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for {
		mb, err := l.Next(context.Background())
		if errors.Is(err, batch.ErrDone) {
			break
		}
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println(mb.Index, mb.Seeds, mb.Block.NumEdges(), mb.Block.SrcNodes)
	}

	// Output:
	// 0 [1 2 3] 0 [1 2 3]
	// 1 [Center] 3 [Center 1 2 3]
}
