// Package config loads the degbatch command configuration: defaults, then an
// optional YAML file, then DEGBATCH_* environment overrides, then validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/degbatch/degree"
)

// EnvPrefix prefixes every environment override, e.g. DEGBATCH_BATCH_MAX_EDGE.
const EnvPrefix = "DEGBATCH"

// Synthetic graph kinds understood by the command.
const (
	SyntheticStar         = "star"
	SyntheticPath         = "path"
	SyntheticRandom       = "random"
	SyntheticPreferential = "preferential"
)

// ErrInvalidConfig is returned by Validate (joined with every violation found).
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full command configuration. Environment keys follow the
// field path, e.g. DEGBATCH_LOG_LEVEL, DEGBATCH_GRAPH_NODES,
// DEGBATCH_BATCH_MAX_NODE.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Graph GraphConfig `yaml:"graph"`
	Batch BatchConfig `yaml:"batch"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GraphConfig describes where the graph comes from: an edge-list file when
// Path is set, a synthetic generator otherwise.
type GraphConfig struct {
	Path        string  `yaml:"path"`
	Directed    bool    `yaml:"directed"`
	Synthetic   string  `yaml:"synthetic"`
	Nodes       int     `yaml:"nodes"`
	Attach      int     `yaml:"attach"`
	Probability float64 `yaml:"probability"`
	Seed        int64   `yaml:"seed"`
}

// BatchConfig holds planner budgets and epoch policy.
type BatchConfig struct {
	MaxNode int   `yaml:"max_node" split_words:"true"`
	MaxEdge int64 `yaml:"max_edge" split_words:"true"`
	Shuffle bool  `yaml:"shuffle"`
	Seed    int64 `yaml:"seed"`
	Epochs  int   `yaml:"epochs"`
	Layers  int   `yaml:"layers"`
	Rank    int   `yaml:"rank"`
	World   int   `yaml:"world"`
}

// Default returns a configuration that runs one unshuffled epoch over a
// 1000-vertex preferential-attachment graph.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Graph: GraphConfig{
			Directed:    true,
			Synthetic:   SyntheticPreferential,
			Nodes:       1000,
			Attach:      3,
			Probability: 0.01,
			Seed:        1,
		},
		Batch: BatchConfig{
			MaxNode: 256,
			MaxEdge: 1024,
			Epochs:  1,
			Layers:  1,
			World:   1,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err = decodeYAML(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse overlays YAML document data on the defaults and validates the result.
// The environment is not consulted.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decodeYAML(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML rejects unknown keys; an empty document leaves cfg untouched.
func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every violation at once, joined under ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		add("log.level %q: %v", c.Log.Level, err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		add("log.format %q: must be json or console", c.Log.Format)
	}

	if c.Graph.Path == "" {
		switch c.Graph.Synthetic {
		case SyntheticStar, SyntheticPath, SyntheticRandom, SyntheticPreferential:
		default:
			add("graph.synthetic %q: must be one of star, path, random, preferential", c.Graph.Synthetic)
		}
		if c.Graph.Nodes < 2 {
			add("graph.nodes %d: must be at least 2", c.Graph.Nodes)
		}
		if c.Graph.Synthetic == SyntheticPreferential && c.Graph.Attach < 1 {
			add("graph.attach %d: must be at least 1", c.Graph.Attach)
		}
		if c.Graph.Synthetic == SyntheticRandom && (c.Graph.Probability < 0 || c.Graph.Probability > 1) {
			add("graph.probability %v: must be within [0,1]", c.Graph.Probability)
		}
	}

	if c.Batch.MaxNode < 1 {
		add("batch.max_node %d: must be at least 1", c.Batch.MaxNode)
	}
	if c.Batch.MaxEdge < 1 || c.Batch.MaxEdge > degree.MaxBudget {
		add("batch.max_edge %d: must be within [1, %d]", c.Batch.MaxEdge, int64(degree.MaxBudget))
	}
	if c.Batch.Epochs < 1 {
		add("batch.epochs %d: must be at least 1", c.Batch.Epochs)
	}
	if c.Batch.Layers < 1 {
		add("batch.layers %d: must be at least 1", c.Batch.Layers)
	}
	if c.Batch.World < 1 || c.Batch.Rank < 0 || c.Batch.Rank >= c.Batch.World {
		add("batch.rank %d / batch.world %d: need 0 <= rank < world", c.Batch.Rank, c.Batch.World)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
