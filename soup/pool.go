package soup

import (
	"sync"

	"github.com/dgedye-lab/bffsoup/bff"
	"github.com/dgedye-lab/bffsoup/rng"
)

// Pool is a fixed set of persistent worker goroutines synchronized around
// each epoch by a start release and an end join. The C original uses two
// pthread barriers sized for T+1 parties; the idiomatic Go rendition here
// gives every worker its own dedicated release channel (so the driver
// controls precisely which worker wakes, rather than racing T workers over
// one shared channel) paired with a sync.WaitGroup for the join. Closing
// every release channel doubles as the shutdown flag — each worker's
// blocked or future receive observes closure and returns instead of
// processing a slice.
type Pool struct {
	threads   int
	arena     *Arena
	starts    []chan struct{}
	done      sync.WaitGroup
	wg        sync.WaitGroup
	pairSteps []uint32

	// workerStreams holds one RNG stream per worker, reseeded by the
	// driver before every start release.
	workerStreams []*rng.Source
}

// NewPool creates and starts T persistent workers over the given arena.
// pairSteps is sized N/2 and reused epoch over epoch; the driver reads it
// after every RunEpoch call.
func NewPool(threads int, arena *Arena) *Pool {
	if threads < 1 {
		threads = 1
	}
	p := &Pool{
		threads:       threads,
		arena:         arena,
		starts:        make([]chan struct{}, threads),
		pairSteps:     make([]uint32, N/2),
		workerStreams: make([]*rng.Source, threads),
	}
	for t := 0; t < threads; t++ {
		p.starts[t] = make(chan struct{})
		p.workerStreams[t] = rng.New(uint64(t) + 1)
		p.wg.Add(1)
		go p.workerLoop(t)
	}
	return p
}

// slice returns the half-open [lo, hi) range of pair indices worker t owns.
// Assignment is static: the last worker's upper bound snaps to N/2 so an
// uneven division never drops a pair.
func (p *Pool) slice(t int) (lo, hi int) {
	chunk := (N / 2) / p.threads
	lo = t * chunk
	if t == p.threads-1 {
		hi = N / 2
	} else {
		hi = lo + chunk
	}
	return lo, hi
}

func (p *Pool) workerLoop(t int) {
	defer p.wg.Done()
	lo, hi := p.slice(t)

	for range p.starts[t] {
		// Re-read the stream pointer on every release: the driver installs
		// a freshly split stream into workerStreams[t] before each start
		// release, and the happens-before edge through the channel receive
		// publishes it to this goroutine.
		stream := p.workerStreams[t]
		for i := lo; i < hi; i++ {
			a, b := p.arena.Pair(i)

			var tape bff.Tape
			copy(tape[:C], p.arena.Cells[a][:])
			copy(tape[C:], p.arena.Cells[b][:])

			h0 := stream.IntN(bff.TapeLen)
			h1 := stream.IntN(bff.TapeLen)
			steps := bff.Run(&tape, h0, h1)
			p.pairSteps[i] = uint32(steps)

			copy(p.arena.Cells[a][:], tape[:C])
			copy(p.arena.Cells[b][:], tape[C:])
		}
		p.done.Done()
	}
}

// RunEpoch reseeds every worker's stream from global (in a fixed order, so
// a fixed seed and thread count reproduce identical arena state at every
// epoch boundary), releases the start barrier, and blocks until every
// worker has finished its slice. It returns the pair_steps slice computed
// this epoch; the slice is reused, so callers must not retain it across
// the next RunEpoch call.
func (p *Pool) RunEpoch(global *rng.Source) []uint32 {
	for t := 0; t < p.threads; t++ {
		p.workerStreams[t] = global.Split(uint64(t))
	}

	p.done.Add(p.threads)
	for t := 0; t < p.threads; t++ {
		p.starts[t] <- struct{}{}
	}
	p.done.Wait()
	return p.pairSteps
}

// Shutdown closes every worker's release channel, which each blocked or
// future receive observes as closure, and waits for all workers to return.
func (p *Pool) Shutdown() {
	for _, ch := range p.starts {
		close(ch)
	}
	p.wg.Wait()
}
