// SPDX-License-Identifier: MIT
// Package: degbatch/loader
//
// types.go - errors, MiniBatch, Block and the Sampler contract.

package loader

import (
	"context"
	"errors"

	"github.com/katalvlaran/degbatch/core"
)

// Sentinel errors for loader construction and sampling.
var (
	// ErrNilGraph is returned by New when no graph is supplied.
	ErrNilGraph = errors.New("loader: graph is nil")

	// ErrNilSampler is returned by New when no sampler is supplied.
	ErrNilSampler = errors.New("loader: sampler is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("loader: invalid option supplied")

	// ErrInvalidLayers is returned by a multi-layer sampler configured with no layers.
	ErrInvalidLayers = errors.New("loader: layers must be at least 1")

	// ErrSample wraps any failure reported by the Sampler.
	ErrSample = errors.New("loader: sampling failed")
)

// Sampler turns a batch of seed (destination) vertices into a computation block.
// Implementations must not retain seeds after returning.
type Sampler interface {
	Sample(ctx context.Context, g *core.Graph, seeds []string) (*Block, error)
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(ctx context.Context, g *core.Graph, seeds []string) (*Block, error)

// Sample calls f(ctx, g, seeds).
func (f SamplerFunc) Sample(ctx context.Context, g *core.Graph, seeds []string) (*Block, error) {
	return f(ctx, g, seeds)
}

// BlockEdge is one message edge of a Block, in block-local coordinates.
type BlockEdge struct {
	Src int    `json:"src"` // index into Block.SrcNodes
	Dst int    `json:"dst"` // index into Block.DstNodes
	ID  string `json:"id"`  // core edge ID
}

// Block is a one-hop bipartite computation graph: every edge carries a
// message from a source vertex into one of the destination (seed) vertices.
//
// SrcNodes starts with DstNodes in the same order, followed by the remaining
// neighbours in order of first appearance, so a destination's own features
// are always found at the same local index on both sides.
type Block struct {
	DstNodes []string    `json:"dst_nodes"`
	SrcNodes []string    `json:"src_nodes"`
	Edges    []BlockEdge `json:"edges"`

	// Inner is the next hop inward: a block whose DstNodes are this block's
	// SrcNodes. Nil for a single-layer block.
	Inner *Block `json:"inner,omitempty"`
}

// NumEdges returns the number of message edges in the block.
func (b *Block) NumEdges() int {
	if b == nil {
		return 0
	}
	return len(b.Edges)
}

// NumSrcNodes returns the number of distinct source vertices.
func (b *Block) NumSrcNodes() int {
	if b == nil {
		return 0
	}
	return len(b.SrcNodes)
}

// Layers returns the number of hops in the block chain (0 for nil).
func (b *Block) Layers() int {
	n := 0
	for ; b != nil; b = b.Inner {
		n++
	}
	return n
}

// MiniBatch is one unit of work produced by Loader.Next.
type MiniBatch struct {
	// Epoch is the zero-based epoch the batch belongs to.
	Epoch int `json:"epoch"`

	// Index is the zero-based position of the batch within its epoch.
	Index int `json:"index"`

	// Seeds are the destination vertices, in planning order. Read-only.
	Seeds []string `json:"seeds"`

	// Weight is the total in-degree of Seeds as recorded by the degree index.
	Weight int64 `json:"weight"`

	// Block is the sampler's output for Seeds.
	Block *Block `json:"block"`
}
