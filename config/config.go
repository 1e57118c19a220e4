// Package config parses the command surface described by the spec: a flat,
// order-insensitive set of flag-style arguments controlling epoch count,
// thread count, RNG seed, stats cadence, mutation rate, and an optional
// run-length log path.
package config

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/dgedye-lab/bffsoup/utils"
)

// Config holds the fully validated run configuration.
type Config struct {
	Epochs     int
	Threads    int
	Seed       uint64
	StatsEvery int
	Mutation   float64
	RunLogPath string
}

// Parse parses args (normally os.Args[1:]) into a Config. An unknown flag
// is a configuration error, reported by the caller to stderr with a
// non-zero exit before any arena work begins.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("bffsoup", flag.ContinueOnError)

	epochs := fs.Int("epochs", 10000, "number of epochs to simulate")
	threads := fs.Int("threads", 0, "worker count; <=0 means auto-detect from NumCPU")
	seed := fs.Uint64("seed", 0, "RNG seed; 0 means a process-derived fallback")
	statsEvery := fs.Int("stats", 100, "stats period in epochs")
	mutation := fs.Float64("mutation", 0, "per-byte per-epoch mutation rate, in [0,1]")
	runlog := fs.String("runlog", "", "optional path for a binary run-length log")

	if err := fs.Parse(args); err != nil {
		return Config{}, utils.WrapError(err, "parsing flags")
	}

	cfg := Config{
		Epochs:     *epochs,
		Threads:    *threads,
		Seed:       *seed,
		StatsEvery: *statsEvery,
		Mutation:   *mutation,
		RunLogPath: *runlog,
	}

	if cfg.Epochs < 0 {
		return Config{}, fmt.Errorf("--epochs must be >= 0, got %d", cfg.Epochs)
	}
	if cfg.StatsEvery < 1 {
		return Config{}, fmt.Errorf("--stats must be >= 1, got %d", cfg.StatsEvery)
	}
	if cfg.Mutation < 0 || cfg.Mutation > 1 {
		return Config{}, fmt.Errorf("--mutation must be in [0,1], got %v", cfg.Mutation)
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
		if cfg.Threads < 1 {
			cfg.Threads = 1
		}
	}

	return cfg, nil
}
