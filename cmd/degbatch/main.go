package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/degbatch/internal/cli"
	"github.com/katalvlaran/degbatch/internal/config"
	"github.com/katalvlaran/degbatch/internal/logging"
	"github.com/katalvlaran/degbatch/loader"
)

// main is the entrypoint for the degbatch command.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// record is one JSON line of output.
type record struct {
	Epoch       int           `json:"epoch"`
	Index       int           `json:"index"`
	Seeds       []string      `json:"seeds"`
	Weight      int64         `json:"weight"`
	NumEdges    int           `json:"num_edges"`
	NumSrcNodes int           `json:"num_src_nodes"`
	Layers      int           `json:"layers"`
	Block       *loader.Block `json:"block,omitempty"`
}

// run encapsulates the command logic for easier testing: batches go to outW,
// logs and usage errors to errW.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	if opts.EnvFile != "" {
		if err = godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	opts.Apply(&cfg)
	if err = cfg.Validate(); err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, errW)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	g, err := buildGraph(cfg.Graph)
	if err != nil {
		return err
	}
	log.Info().
		Int("vertices", g.VertexCount()).
		Int("edges", g.EdgeCount()).
		Bool("directed", cfg.Graph.Directed).
		Str("source", graphSource(cfg.Graph)).
		Msg("graph ready")

	var sampler loader.Sampler = loader.FullNeighborSampler{}
	if cfg.Batch.Layers > 1 {
		sampler = loader.MultiLayerFullNeighborSampler{Layers: cfg.Batch.Layers}
	}
	l, err := loader.New(g, g.Vertices(), sampler,
		loader.WithMaxNode(cfg.Batch.MaxNode),
		loader.WithMaxEdge(cfg.Batch.MaxEdge),
		loader.WithShuffle(cfg.Batch.Shuffle),
		loader.WithSeed(cfg.Batch.Seed),
		loader.WithShard(cfg.Batch.Rank, cfg.Batch.World),
		loader.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var (
		line    []byte
		batches int
	)
	for epoch := 0; epoch < cfg.Batch.Epochs; epoch++ {
		if epoch > 0 {
			if err = l.NewEpoch(); err != nil {
				return err
			}
		}
		for mb, err := range l.All(ctx) {
			if err != nil {
				return err
			}
			rec := record{
				Epoch:       mb.Epoch,
				Index:       mb.Index,
				Seeds:       mb.Seeds,
				Weight:      mb.Weight,
				NumEdges:    mb.Block.NumEdges(),
				NumSrcNodes: mb.Block.NumSrcNodes(),
				Layers:      mb.Block.Layers(),
			}
			if opts.Blocks {
				rec.Block = mb.Block
			}
			if line, err = sonic.Marshal(rec); err != nil {
				return fmt.Errorf("encode batch %d/%d: %w", mb.Epoch, mb.Index, err)
			}
			line = append(line, '\n')
			if _, err = outW.Write(line); err != nil {
				return err
			}
			batches++
		}
	}
	log.Info().Int("epochs", cfg.Batch.Epochs).Int("batches", batches).Msg("done")

	return nil
}
