// File: builder_impl_test.go
// Package builder_test checks topology, in-degree profiles, determinism and
// parameter validation for every Constructor.
package builder_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/degbatch/builder"
	"github.com/katalvlaran/degbatch/core"
)

// inDegreeOf returns the in-degree of every vertex in g, keyed by ID.
func inDegreeOf(t *testing.T, g *core.Graph) map[string]int64 {
	t.Helper()
	vs := g.Vertices()
	degs, err := g.InDegrees(vs)
	require.NoError(t, err)
	out := make(map[string]int64, len(vs))
	for i, id := range vs {
		out[id] = degs[i]
	}
	return out
}

func directed() []core.GraphOption { return []core.GraphOption{core.WithDirected(true)} }

func TestStar_HubCollectsAllEdges(t *testing.T) {
	t.Parallel()

	g, err := builder.BuildGraph(directed(), nil, builder.Star(5))
	require.NoError(t, err)
	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())

	hub, d := g.MaxInDegree()
	assert.Equal(t, builder.CenterVertexID, hub)
	assert.EqualValues(t, 4, d)
	for _, leaf := range []string{"1", "2", "3", "4"} {
		got, err := g.InDegree(leaf)
		require.NoError(t, err)
		assert.Zero(t, got, "leaf %s", leaf)
	}
}

func TestPath_UniformInDegree(t *testing.T) {
	t.Parallel()

	g, err := builder.BuildGraph(directed(), nil, builder.Path(4))
	require.NoError(t, err)

	want := map[string]int64{"0": 0, "1": 1, "2": 1, "3": 1}
	if diff := cmp.Diff(want, inDegreeOf(t, g)); diff != "" {
		t.Fatalf("in-degrees mismatch (-want +got):\n%s", diff)
	}
}

func TestWeightedGraph_UsesWeightFn(t *testing.T) {
	t.Parallel()

	g, err := builder.BuildGraph(
		[]core.GraphOption{core.WithDirected(true), core.WithWeighted()},
		[]builder.BuilderOption{builder.WithWeightFn(func(*rand.Rand) int64 { return 7 })},
		builder.Path(3),
	)
	require.NoError(t, err)
	for _, e := range g.Edges() {
		assert.EqualValues(t, 7, e.Weight)
	}

	// Default weight on a weighted graph is 1.
	g, err = builder.BuildGraph([]core.GraphOption{core.WithWeighted()}, nil, builder.Path(3))
	require.NoError(t, err)
	for _, e := range g.Edges() {
		assert.EqualValues(t, 1, e.Weight)
	}
}

func TestIDScheme_Prefix(t *testing.T) {
	t.Parallel()

	g, err := builder.BuildGraph(directed(),
		[]builder.BuilderOption{builder.WithIDScheme(builder.PrefixIDFn("n"))},
		builder.Path(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"n0", "n1", "n2"}, g.Vertices())
}

func TestRandomSparse_Bounds(t *testing.T) {
	t.Parallel()

	seed := []builder.BuilderOption{builder.WithSeed(3)}

	// p=0: vertices only.
	g, err := builder.BuildGraph(directed(), seed, builder.RandomSparse(6, 0))
	require.NoError(t, err)
	assert.Equal(t, 6, g.VertexCount())
	assert.Zero(t, g.EdgeCount())

	// p=1 on a directed graph: every ordered pair, in-degree n-1 everywhere.
	g, err = builder.BuildGraph(directed(), seed, builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 20, g.EdgeCount())
	for id, d := range inDegreeOf(t, g) {
		assert.EqualValues(t, 4, d, "vertex %s", id)
	}

	// p=1 undirected: each unordered pair once; an undirected edge counts at both ends.
	g, err = builder.BuildGraph(nil, seed, builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 10, g.EdgeCount())
	for id, d := range inDegreeOf(t, g) {
		assert.EqualValues(t, 4, d, "vertex %s", id)
	}
}

func TestPreferentialAttachment_Profile(t *testing.T) {
	t.Parallel()

	const n, m = 300, 2
	g, err := builder.BuildGraph(directed(),
		[]builder.BuilderOption{builder.WithSeed(11)},
		builder.PreferentialAttachment(n, m))
	require.NoError(t, err)

	assert.Equal(t, n, g.VertexCount())
	// Vertex 1 attaches once, every later vertex m times.
	assert.Equal(t, 1+(n-2)*m, g.EdgeCount())

	var total int64
	for _, d := range inDegreeOf(t, g) {
		total += d
	}
	assert.EqualValues(t, g.EdgeCount(), total, "directed: one unit of in-degree per edge")

	// The newest vertex has no in-edges; some early vertex is a hub.
	last, err := g.InDegree("299")
	require.NoError(t, err)
	assert.Zero(t, last)
	_, hubDeg := g.MaxInDegree()
	assert.Greater(t, hubDeg, int64(4*m), "expected a heavy-tailed hub")
}

func TestStochastic_Deterministic(t *testing.T) {
	t.Parallel()

	build := func(ctor builder.Constructor) []*core.Edge {
		g, err := builder.BuildGraph(directed(), []builder.BuilderOption{builder.WithSeed(99)}, ctor)
		require.NoError(t, err)
		return g.Edges()
	}

	for name, ctor := range map[string]builder.Constructor{
		"RandomSparse":           builder.RandomSparse(40, 0.1),
		"PreferentialAttachment": builder.PreferentialAttachment(80, 3),
	} {
		if diff := cmp.Diff(build(ctor), build(ctor)); diff != "" {
			t.Errorf("%s: same seed produced different graphs (-a +b):\n%s", name, diff)
		}
	}
}

func TestComposition_OverlayHub(t *testing.T) {
	t.Parallel()

	// A path 0..4 and a star whose leaves reuse IDs 1..4.
	g, err := builder.BuildGraph(directed(), nil, builder.Path(5), builder.Star(5))
	require.NoError(t, err)
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 8, g.EdgeCount())

	d, err := g.InDegree(builder.CenterVertexID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, d)
}

func TestConstructors_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opts []builder.BuilderOption
		ctor builder.Constructor
		want error
	}{
		{"Star too small", nil, builder.Star(1), builder.ErrTooFewVertices},
		{"Path too small", nil, builder.Path(1), builder.ErrTooFewVertices},
		{"RandomSparse n=0", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(0, 0.5), builder.ErrTooFewVertices},
		{"RandomSparse p<0", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(3, -0.1), builder.ErrInvalidProbability},
		{"RandomSparse p>1", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(3, 1.5), builder.ErrInvalidProbability},
		{"RandomSparse no rng", nil, builder.RandomSparse(3, 0.5), builder.ErrNeedRandSource},
		{"PA n too small", []builder.BuilderOption{builder.WithSeed(1)}, builder.PreferentialAttachment(1, 1), builder.ErrTooFewVertices},
		{"PA m too small", []builder.BuilderOption{builder.WithSeed(1)}, builder.PreferentialAttachment(5, 0), builder.ErrTooFewVertices},
		{"PA no rng", nil, builder.PreferentialAttachment(5, 1), builder.ErrNeedRandSource},
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g, err := builder.BuildGraph(directed(), tc.opts, tc.ctor)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, g)
		})
	}
}

func TestConstructors_CoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	// Unweighted graph with a custom weight is still fine: weights are only drawn on weighted graphs.
	_, err := builder.BuildGraph(directed(),
		[]builder.BuilderOption{builder.WithWeightFn(func(*rand.Rand) int64 { return 5 })},
		builder.Star(3))
	require.NoError(t, err)

	// Building the same star twice violates the simple-graph constraint.
	_, err = builder.BuildGraph(directed(), nil, builder.Star(3), builder.Star(3))
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)

	require.ErrorIs(t, builder.Apply(nil, nil, builder.Path(2)), builder.ErrConstructFailed)
}

func TestOptions_PanicOnNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithWeightFn(nil) })
}
