// Package runlog implements the optional binary run-length sink: a raw,
// unframed, little-endian stream of uint32 values, exactly N/2 per epoch,
// appended epoch by epoch. The sink is wrapped in a circuit breaker and a
// token-bucket rate limiter so that transient disk pressure over a long
// run degrades to "stop logging, keep simulating" instead of blocking or
// crashing the whole run.
package runlog

import (
	"encoding/binary"
	"os"
	"time"

	"github.com/sony/gobreaker"
	"github.com/yasserelgammal/rate-limiter/limiter"
	"github.com/yasserelgammal/rate-limiter/store"

	"github.com/dgedye-lab/bffsoup/utils"
)

// Writer appends per-epoch pair_steps slices to a file as raw little-endian
// uint32 values, with no header and no framing.
type Writer struct {
	f       *os.File
	breaker *gobreaker.CircuitBreaker
	limiter *limiter.TokenBucket
	logger  *utils.Logger
	tripped bool
	buf     []byte
}

// Open creates (or truncates) path for appending. A failure here is a
// configuration error per the spec's error taxonomy: it must be reported
// and the process must exit before any epoch runs.
func Open(path string, logger *utils.Logger) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, utils.WrapError(err, "opening run-length log")
	}

	st := store.NewMemoryStore(time.Minute)
	tb, err := limiter.NewTokenBucket(
		limiter.Config{
			Rate:     1000, // epochs of log writes per second, generously above any real run rate
			Duration: time.Second,
			Burst:    50,
		},
		st,
	)
	if err != nil {
		f.Close()
		return nil, utils.WrapError(err, "constructing run-length log rate limiter")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "runlog",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Writer{f: f, breaker: breaker, limiter: tb, logger: logger, buf: make([]byte, 4)}, nil
}

// Append writes pairSteps (length N/2, in pair-index order) as raw
// little-endian uint32 values. If the circuit breaker is open (tripped
// after repeated write failures), Append is a silent no-op for the
// remainder of the run: the run-length log becomes a best-effort
// diagnostic artifact, never a reason to abort the simulation.
func (w *Writer) Append(pairSteps []uint32) {
	if w.tripped {
		return
	}
	if !w.limiter.Allow("runlog") {
		return
	}

	_, err := w.breaker.Execute(func() (interface{}, error) {
		for _, v := range pairSteps {
			binary.LittleEndian.PutUint32(w.buf, v)
			if _, err := w.f.Write(w.buf); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if w.breaker.State() == gobreaker.StateOpen {
			w.tripped = true
			w.logger.Error("run-length log circuit breaker tripped; disabling further writes", utils.Err(err))
		} else {
			w.logger.Warn("run-length log write failed", utils.Err(err))
		}
	}
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}
