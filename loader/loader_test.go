package loader_test

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/degbatch/batch"
	"github.com/katalvlaran/degbatch/builder"
	"github.com/katalvlaran/degbatch/core"
	"github.com/katalvlaran/degbatch/loader"
)

// LoaderSuite runs against a small directed graph with in-degrees
// A=3, B=1, C=2, D=0.
type LoaderSuite struct {
	suite.Suite
	g    *core.Graph
	nids []string
}

func (s *LoaderSuite) SetupTest() {
	g := core.NewGraph(core.WithDirected(true))
	for _, e := range [][2]string{
		{"s1", "A"}, {"s2", "A"}, {"s3", "A"}, // e1..e3
		{"A", "B"},  // e4
		{"B", "C"},  // e5
		{"s1", "C"}, // e6
	} {
		_, err := g.AddEdge(e[0], e[1], 0)
		s.Require().NoError(err)
	}
	s.Require().NoError(g.AddVertex("D"))
	s.g = g
	s.nids = []string{"A", "B", "C", "D"}
}

// drain collects the remaining batches of the current epoch.
func drain(t *testing.T, l *loader.Loader) []*loader.MiniBatch {
	t.Helper()
	var out []*loader.MiniBatch
	for {
		mb, err := l.Next(context.Background())
		if errors.Is(err, batch.ErrDone) {
			return out
		}
		require.NoError(t, err)
		out = append(out, mb)
	}
}

func seedsOf(mbs []*loader.MiniBatch) [][]string {
	out := make([][]string, len(mbs))
	for i, mb := range mbs {
		out[i] = mb.Seeds
	}
	return out
}

func (s *LoaderSuite) TestReferenceEpoch() {
	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(4), loader.WithMaxEdge(3))
	s.Require().NoError(err)

	got := drain(s.T(), l)
	want := []*loader.MiniBatch{
		{
			Epoch: 0, Index: 0, Seeds: []string{"A"}, Weight: 3,
			Block: &loader.Block{
				DstNodes: []string{"A"},
				SrcNodes: []string{"A", "s1", "s2", "s3"},
				Edges: []loader.BlockEdge{
					{Src: 1, Dst: 0, ID: "e1"},
					{Src: 2, Dst: 0, ID: "e2"},
					{Src: 3, Dst: 0, ID: "e3"},
				},
			},
		},
		{
			Epoch: 0, Index: 1, Seeds: []string{"B", "C", "D"}, Weight: 3,
			Block: &loader.Block{
				DstNodes: []string{"B", "C", "D"},
				SrcNodes: []string{"B", "C", "D", "A", "s1"},
				Edges: []loader.BlockEdge{
					{Src: 3, Dst: 0, ID: "e4"},
					{Src: 0, Dst: 1, ID: "e5"},
					{Src: 4, Dst: 1, ID: "e6"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		s.T().Fatalf("epoch mismatch (-want +got):\n%s", diff)
	}

	// Exhausted: ErrDone repeats until the next epoch.
	_, err = l.Next(context.Background())
	s.ErrorIs(err, batch.ErrDone)
	s.Zero(l.Remaining())

	s.Require().NoError(l.NewEpoch())
	s.Equal(1, l.Epoch())
	again := drain(s.T(), l)
	s.Equal(seedsOf(got), seedsOf(again))
	s.Equal(1, again[0].Epoch)
	s.Equal(0, again[0].Index)
}

func (s *LoaderSuite) TestModifyBudgetsPersistAcrossEpochs() {
	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(4), loader.WithMaxEdge(6))
	s.Require().NoError(err)

	s.Require().NoError(l.ModifyMaxNode(2))
	s.Equal([][]string{{"A", "B"}, {"C", "D"}}, seedsOf(drain(s.T(), l)))

	s.Require().NoError(l.NewEpoch())
	s.Require().NoError(l.ModifyMaxEdge(2))
	s.Equal(batch.Budget{MaxNode: 2, MaxEdge: 2}, l.Budget())
	s.Equal([][]string{{"A"}, {"B"}, {"C", "D"}}, seedsOf(drain(s.T(), l)))

	s.Require().NoError(l.NewEpoch())
	s.Equal(batch.Budget{MaxNode: 2, MaxEdge: 2}, l.Budget())

	s.ErrorIs(l.ModifyMaxNode(0), batch.ErrInvalidBudget)
	s.ErrorIs(l.ModifyMaxEdge(-1), batch.ErrInvalidBudget)
	s.Equal(batch.Budget{MaxNode: 2, MaxEdge: 2}, l.Budget(), "failed modify leaves budget")
}

func (s *LoaderSuite) TestResetBatchNode() {
	ctx := context.Background()
	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(4), loader.WithMaxEdge(6))
	s.Require().NoError(err)

	mb, err := l.Next(ctx)
	s.Require().NoError(err)
	s.Equal([]string{"A", "B", "C", "D"}, mb.Seeds)
	s.Zero(l.Remaining())

	// Too large downstream: shrink and retry the same seeds.
	s.Require().NoError(l.ModifyMaxEdge(3))
	s.Require().NoError(l.ResetBatchNode(len(mb.Seeds)))
	s.Equal(4, l.Remaining())

	s.Equal([][]string{{"A"}, {"B", "C", "D"}}, seedsOf(drain(s.T(), l)))

	s.ErrorIs(l.ResetBatchNode(5), batch.ErrInvalidRollback)
	s.ErrorIs(l.ResetBatchNode(-1), batch.ErrInvalidRollback)
	s.Require().NoError(l.ResetBatchNode(4))
	s.Equal(4, l.Remaining())
}

func (s *LoaderSuite) TestSamplerFailureRetriesSameSeeds() {
	boom := errors.New("device out of memory")
	calls := 0
	flaky := loader.SamplerFunc(func(ctx context.Context, g *core.Graph, seeds []string) (*loader.Block, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return loader.FullNeighborSampler{}.Sample(ctx, g, seeds)
	})

	l, err := loader.New(s.g, s.nids, flaky, loader.WithMaxNode(4), loader.WithMaxEdge(3))
	s.Require().NoError(err)

	_, err = l.Next(context.Background())
	s.ErrorIs(err, loader.ErrSample)
	s.ErrorIs(err, boom)
	s.Equal(4, l.Remaining())

	got := drain(s.T(), l)
	s.Equal([][]string{{"A"}, {"B", "C", "D"}}, seedsOf(got))
	s.Equal(0, got[0].Index, "failed attempt does not consume a batch index")
}

func (s *LoaderSuite) TestOversizedSeedIsWarned() {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.WarnLevel)

	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(4), loader.WithMaxEdge(1), loader.WithLogger(log))
	s.Require().NoError(err)

	got := drain(s.T(), l)
	s.Equal([][]string{{"A"}, {"B"}, {"C"}, {"D"}}, seedsOf(got))
	s.Contains(buf.String(), "seed exceeds edge budget on its own")
	s.Contains(buf.String(), `"seed":"A"`)
	s.Contains(buf.String(), `"seed":"C"`)
	s.NotContains(buf.String(), `"seed":"B"`)
}

func (s *LoaderSuite) TestContextCanceled() {
	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Next(ctx)
	s.ErrorIs(err, context.Canceled)
	s.Equal(4, l.Remaining())
}

func (s *LoaderSuite) TestAllIterator() {
	l, err := loader.New(s.g, s.nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(1), loader.WithMaxEdge(100))
	s.Require().NoError(err)

	var got []string
	for mb, err := range l.All(context.Background()) {
		s.Require().NoError(err)
		got = append(got, mb.Seeds...)
		if len(got) == 2 {
			break
		}
	}
	s.Equal([]string{"A", "B"}, got)

	for mb, err := range l.All(context.Background()) {
		s.Require().NoError(err)
		got = append(got, mb.Seeds...)
	}
	s.Equal(s.nids, got)
}

func (s *LoaderSuite) TestConstructionErrors() {
	_, err := loader.New(nil, s.nids, loader.FullNeighborSampler{})
	s.ErrorIs(err, loader.ErrNilGraph)

	_, err = loader.New(s.g, s.nids, nil)
	s.ErrorIs(err, loader.ErrNilSampler)

	_, err = loader.New(s.g, s.nids, loader.FullNeighborSampler{}, loader.WithShard(2, 2))
	s.ErrorIs(err, loader.ErrOptionViolation)

	_, err = loader.New(s.g, s.nids, loader.FullNeighborSampler{}, loader.WithMaxNode(0))
	s.ErrorIs(err, batch.ErrInvalidBudget)

	_, err = loader.New(s.g, []string{"A", "nope"}, loader.FullNeighborSampler{})
	s.ErrorIs(err, core.ErrVertexNotFound)
}

func (s *LoaderSuite) TestEmptySeedSet() {
	l, err := loader.New(s.g, nil, loader.FullNeighborSampler{})
	s.Require().NoError(err)
	_, err = l.Next(context.Background())
	s.ErrorIs(err, batch.ErrDone)
	s.Zero(l.Len())
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

// powerLawGraph returns a directed preferential-attachment graph and all its vertex IDs.
func powerLawGraph(t *testing.T, n int) (*core.Graph, []string) {
	t.Helper()
	g, err := builder.BuildGraph(
		[]core.GraphOption{core.WithDirected(true)},
		[]builder.BuilderOption{builder.WithSeed(5)},
		builder.PreferentialAttachment(n, 3),
	)
	require.NoError(t, err)
	return g, g.Vertices()
}

// TestEpoch_BlocksMatchDegreeIndex checks, for a shuffled skewed graph, that
// every epoch covers each seed once, every block carries exactly the batch's
// in-degree sum, and batches respect both caps bar lone oversized seeds.
func TestEpoch_BlocksMatchDegreeIndex(t *testing.T) {
	g, nids := powerLawGraph(t, 400)
	const maxNode, maxEdge = 32, 40

	l, err := loader.New(g, nids, loader.FullNeighborSampler{},
		loader.WithMaxNode(maxNode), loader.WithMaxEdge(maxEdge),
		loader.WithShuffle(true), loader.WithSeed(17))
	require.NoError(t, err)

	var orders [][]string
	for epoch := 0; epoch < 3; epoch++ {
		var order []string
		for _, mb := range drain(t, l) {
			assert.Equal(t, epoch, mb.Epoch)
			assert.LessOrEqual(t, len(mb.Seeds), maxNode)
			if len(mb.Seeds) > 1 {
				assert.LessOrEqual(t, mb.Weight, int64(maxEdge))
			}
			assert.EqualValues(t, mb.Weight, mb.Block.NumEdges())

			degs, err := g.InDegrees(mb.Seeds)
			require.NoError(t, err)
			var sum int64
			for _, d := range degs {
				sum += d
			}
			assert.Equal(t, sum, mb.Weight)
			order = append(order, mb.Seeds...)
		}

		sorted := append([]string(nil), order...)
		sort.Strings(sorted)
		require.Equal(t, nids, sorted, "epoch %d must cover every seed once", epoch)
		orders = append(orders, order)
		require.NoError(t, l.NewEpoch())
	}
	assert.NotEqual(t, orders[0], orders[1], "each epoch reshuffles")
	assert.NotEqual(t, orders[1], orders[2], "each epoch reshuffles")
}

func TestEpoch_Deterministic(t *testing.T) {
	g, nids := powerLawGraph(t, 200)

	run := func() [][][]string {
		l, err := loader.New(g, nids, loader.FullNeighborSampler{},
			loader.WithMaxNode(16), loader.WithMaxEdge(30),
			loader.WithShuffle(true), loader.WithSeed(9))
		require.NoError(t, err)
		var out [][][]string
		for epoch := 0; epoch < 2; epoch++ {
			out = append(out, seedsOf(drain(t, l)))
			require.NoError(t, l.NewEpoch())
		}
		return out
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("same seed, different batches (-a +b):\n%s", diff)
	}
}

func TestShard_SplitsSeedsAcrossWorkers(t *testing.T) {
	g, nids := powerLawGraph(t, 101)

	var all []string
	for rank := 0; rank < 3; rank++ {
		l, err := loader.New(g, nids, loader.FullNeighborSampler{},
			loader.WithShard(rank, 3), loader.WithMaxEdge(50))
		require.NoError(t, err)
		for _, mb := range drain(t, l) {
			all = append(all, mb.Seeds...)
		}
	}
	assert.Equal(t, nids, all, "unshuffled shards concatenate to the input")
}

func TestFullNeighborSampler_Undirected(t *testing.T) {
	g := core.NewGraph(core.WithLoops())
	_, err := g.AddEdge("a", "b", 0) // e1
	require.NoError(t, err)
	_, err = g.AddEdge("c", "a", 0) // e2
	require.NoError(t, err)
	_, err = g.AddEdge("a", "a", 0) // e3
	require.NoError(t, err)

	blk, err := loader.FullNeighborSampler{}.Sample(context.Background(), g, []string{"a"})
	require.NoError(t, err)

	want := &loader.Block{
		DstNodes: []string{"a"},
		SrcNodes: []string{"a", "b", "c"},
		Edges: []loader.BlockEdge{
			{Src: 1, Dst: 0, ID: "e1"},
			{Src: 2, Dst: 0, ID: "e2"},
			{Src: 0, Dst: 0, ID: "e3"},
		},
	}
	if diff := cmp.Diff(want, blk); diff != "" {
		t.Fatalf("block mismatch (-want +got):\n%s", diff)
	}
	d, err := g.InDegree("a")
	require.NoError(t, err)
	assert.EqualValues(t, d, blk.NumEdges())

	_, err = loader.FullNeighborSampler{}.Sample(context.Background(), g, []string{"zzz"})
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestMultiLayerFullNeighborSampler(t *testing.T) {
	// c → b → a, plus d → a.
	g := core.NewGraph(core.WithDirected(true))
	for _, e := range [][2]string{{"b", "a"}, {"c", "b"}, {"d", "a"}} {
		_, err := g.AddEdge(e[0], e[1], 0)
		require.NoError(t, err)
	}

	blk, err := loader.MultiLayerFullNeighborSampler{Layers: 2}.Sample(context.Background(), g, []string{"a"})
	require.NoError(t, err)
	require.Equal(t, 2, blk.Layers())

	assert.Equal(t, []string{"a", "b", "d"}, blk.SrcNodes)
	assert.Equal(t, 2, blk.NumEdges())

	inner := blk.Inner
	assert.Equal(t, blk.SrcNodes, inner.DstNodes)
	assert.Equal(t, []string{"a", "b", "d", "c"}, inner.SrcNodes)
	assert.Equal(t, 3, inner.NumEdges(), "a has two in-edges, b one, d none")
	assert.Nil(t, inner.Inner)

	one, err := loader.MultiLayerFullNeighborSampler{Layers: 1}.Sample(context.Background(), g, []string{"a"})
	require.NoError(t, err)
	single, err := loader.FullNeighborSampler{}.Sample(context.Background(), g, []string{"a"})
	require.NoError(t, err)
	if diff := cmp.Diff(single, one); diff != "" {
		t.Fatalf("one layer must equal the single-hop sampler (-want +got):\n%s", diff)
	}

	_, err = loader.MultiLayerFullNeighborSampler{}.Sample(context.Background(), g, []string{"a"})
	assert.ErrorIs(t, err, loader.ErrInvalidLayers)
	assert.Zero(t, (*loader.Block)(nil).Layers())
}

// TestSevenVertexGraph replays the classic seven-vertex check: no block may
// exceed four destinations or four edges, shuffled or not.
func TestSevenVertexGraph(t *testing.T) {
	src := []string{"1", "2", "3", "4", "0", "3", "0", "3", "0", "0", "0", "0"}
	dst := []string{"0", "0", "0", "0", "1", "1", "2", "2", "3", "4", "5", "6"}
	g := core.NewGraph(core.WithDirected(true))
	for i := range src {
		_, err := g.AddEdge(src[i], dst[i], 0)
		require.NoError(t, err)
	}
	nids := g.Vertices()

	for _, shuffle := range []bool{false, true} {
		l, err := loader.New(g, nids, loader.FullNeighborSampler{},
			loader.WithMaxNode(4), loader.WithMaxEdge(4), loader.WithShuffle(shuffle))
		require.NoError(t, err)

		got := drain(t, l)
		seen := 0
		for _, mb := range got {
			assert.LessOrEqual(t, len(mb.Block.DstNodes), 4)
			assert.LessOrEqual(t, mb.Block.NumEdges(), 4)
			seen += len(mb.Seeds)
		}
		assert.Equal(t, len(nids), seen)

		if !shuffle {
			assert.Equal(t, [][]string{{"0"}, {"1", "2"}, {"3", "4", "5", "6"}}, seedsOf(got))
		}
	}
}
