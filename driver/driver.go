// Package driver orchestrates the epoch loop: shuffle, barrier release,
// mutation, periodic statistics, and the optional run-length log.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgedye-lab/bffsoup/config"
	"github.com/dgedye-lab/bffsoup/rng"
	"github.com/dgedye-lab/bffsoup/runlog"
	"github.com/dgedye-lab/bffsoup/soup"
	"github.com/dgedye-lab/bffsoup/stats"
	"github.com/dgedye-lab/bffsoup/utils"
)

// Run executes a full soup simulation per cfg, writing the tab-separated
// stats stream to out and logging configuration and diagnostics through
// logger. It returns an error only for opening the run-length log or for a
// final shutdown that exceeds its timeout; runtime BFF outcomes never
// surface as Go errors.
func Run(cfg config.Config, out io.Writer, logger *utils.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = rng.Fallback()
	}
	runID := utils.GenerateID()[:8]

	logger.Info("starting run",
		utils.String("run_id", runID),
		utils.Int("epochs", cfg.Epochs),
		utils.Int("threads", cfg.Threads),
		utils.Uint64("seed", seed),
		utils.Int("stats_every", cfg.StatsEvery),
		utils.Float64("mutation", cfg.Mutation),
	)

	var log *runlog.Writer
	if cfg.RunLogPath != "" {
		w, err := runlog.Open(cfg.RunLogPath, logger.With("runlog"))
		if err != nil {
			return err
		}
		log = w
	}

	global := rng.New(seed)
	arena := soup.NewArena(global)
	pool := soup.NewPool(cfg.Threads, arena)
	card := stats.NewCardinality()

	shutdown := utils.NewGracefulShutdown(10*time.Second, logger.With("shutdown"))
	shutdown.Register(func() error {
		pool.Shutdown()
		return nil
	})
	if log != nil {
		shutdown.Register(log.Close)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received signal, draining current epoch")
			cancel()
		case <-ctx.Done():
		}
	}()
	defer signal.Stop(sigCh)
	defer cancel()

	writeHeader(out)

	emit := func(epoch int, pairSteps []uint32) {
		tick := stats.Compute(epoch, arena, pairSteps, card)
		writeTick(out, tick)
		logger.Debug("stats tick",
			utils.Int("epoch", epoch),
			utils.Uint64("exact_unique_ids", uint64(tick.UniqueIDs)),
			utils.Uint64("approx_unique_ids", uint64(tick.ApproxUniqueIDs)),
		)
	}

	emit(0, make([]uint32, soup.N/2))

	epoch := 1
	for ; epoch <= cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			goto done
		default:
		}

		arena.Shuffle(global)
		pairSteps := pool.RunEpoch(global)

		arena.Mutate(global, cfg.Mutation, uint16(epoch))

		if log != nil {
			log.Append(pairSteps)
		}

		if epoch%cfg.StatsEvery == 0 {
			emit(epoch, pairSteps)
		}
	}
done:

	return shutdown.Shutdown(context.Background())
}

func writeHeader(out io.Writer) {
	fmt.Fprintln(out, "epoch\tmean_ops\tmedian_ops\tmean_steps\tmax_steps\tunique_ids\tmodal_id\trepresentative_tape")
}

func writeTick(out io.Writer, t stats.Tick) {
	fmt.Fprintf(out, "%d\t%.3f\t%.1f\t%.3f\t%d\t%d\t%d\t|%s| (%d)\n",
		t.Epoch, t.MeanOps, t.MedianOps, t.MeanSteps, t.MaxSteps, t.UniqueIDs, t.ModalID, t.Representative, t.ModalCount)
}
