// Package cli parses the degbatch command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/degbatch/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line. Flags that were set explicitly are
// kept as overrides and applied on top of the loaded configuration.
type Options struct {
	ConfigPath string
	EnvFile    string
	Blocks     bool

	overrides []func(*config.Config)
}

// Apply writes every explicitly set flag into cfg.
func (o *Options) Apply(cfg *config.Config) {
	for _, fn := range o.overrides {
		fn(cfg)
	}
}

// Parse processes command-line arguments. It returns the Options, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("degbatch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
degbatch - plan degree-balanced mini-batches over a graph.

Usage:
  degbatch [options] [EDGE_LIST]

Arguments:
  EDGE_LIST
    Whitespace-separated "src dst" lines ('#' starts a comment). When absent,
    a synthetic graph is generated.

Options:
`)
		flagSet.PrintDefaults()
	}

	def := config.Default()
	opts := &Options{}
	flagSet.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML configuration file.")
	flagSet.StringVar(&opts.EnvFile, "env-file", ".env", "Dotenv file loaded before the environment is read (ignored if missing).")
	flagSet.BoolVar(&opts.Blocks, "blocks", false, "Include the sampled block in every output line.")

	logLevel := flagSet.String("log-level", def.Log.Level, "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormat := flagSet.String("log-format", def.Log.Format, "Log output format: 'json' or 'console'.")
	directed := flagSet.Bool("directed", def.Graph.Directed, "Treat edges as directed (src→dst adds in-degree to dst only).")
	synthetic := flagSet.String("synthetic", def.Graph.Synthetic, "Synthetic graph: star, path, random or preferential.")
	nodes := flagSet.Int("nodes", def.Graph.Nodes, "Vertices in the synthetic graph.")
	attach := flagSet.Int("attach", def.Graph.Attach, "Edges per new vertex (preferential).")
	prob := flagSet.Float64("p", def.Graph.Probability, "Edge probability (random).")
	graphSeed := flagSet.Int64("graph-seed", def.Graph.Seed, "Seed of the synthetic graph generator.")
	maxNode := flagSet.Int("max-node", def.Batch.MaxNode, "Maximum seeds per batch.")
	maxEdge := flagSet.Int64("max-edge", def.Batch.MaxEdge, "Maximum total in-degree per batch.")
	shuffle := flagSet.Bool("shuffle", def.Batch.Shuffle, "Shuffle the seed order every epoch.")
	seed := flagSet.Int64("seed", def.Batch.Seed, "Base shuffle seed.")
	epochs := flagSet.Int("epochs", def.Batch.Epochs, "Number of epochs to plan.")
	layers := flagSet.Int("layers", def.Batch.Layers, "Hops sampled around every batch.")
	rank := flagSet.Int("rank", def.Batch.Rank, "Shard index of this worker.")
	world := flagSet.Int("world", def.Batch.World, "Number of workers sharing the seed set.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one edge list, got %d arguments", flagSet.NArg())}
	}

	set := func(fn func(*config.Config)) { opts.overrides = append(opts.overrides, fn) }
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			set(func(c *config.Config) { c.Log.Level = *logLevel })
		case "log-format":
			set(func(c *config.Config) { c.Log.Format = *logFormat })
		case "directed":
			set(func(c *config.Config) { c.Graph.Directed = *directed })
		case "synthetic":
			set(func(c *config.Config) { c.Graph.Synthetic = *synthetic })
		case "nodes":
			set(func(c *config.Config) { c.Graph.Nodes = *nodes })
		case "attach":
			set(func(c *config.Config) { c.Graph.Attach = *attach })
		case "p":
			set(func(c *config.Config) { c.Graph.Probability = *prob })
		case "graph-seed":
			set(func(c *config.Config) { c.Graph.Seed = *graphSeed })
		case "max-node":
			set(func(c *config.Config) { c.Batch.MaxNode = *maxNode })
		case "max-edge":
			set(func(c *config.Config) { c.Batch.MaxEdge = *maxEdge })
		case "shuffle":
			set(func(c *config.Config) { c.Batch.Shuffle = *shuffle })
		case "seed":
			set(func(c *config.Config) { c.Batch.Seed = *seed })
		case "epochs":
			set(func(c *config.Config) { c.Batch.Epochs = *epochs })
		case "layers":
			set(func(c *config.Config) { c.Batch.Layers = *layers })
		case "rank":
			set(func(c *config.Config) { c.Batch.Rank = *rank })
		case "world":
			set(func(c *config.Config) { c.Batch.World = *world })
		}
	})
	if path := flagSet.Arg(0); path != "" {
		set(func(c *config.Config) { c.Graph.Path = path })
	}

	return opts, false, nil
}
