// Package stats computes the per-tick lineage and execution statistics the
// driver reports: op-count mean/median, distinct lineage IDs, the modal ID
// and its occupancy, a representative tape rendering, and a step summary.
package stats

import (
	"sort"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/dgedye-lab/bffsoup/bff"
	"github.com/dgedye-lab/bffsoup/soup"
	"github.com/dgedye-lab/bffsoup/token"
)

// Tick is one row of the stats stream.
type Tick struct {
	Epoch            int
	MeanOps          float64
	MedianOps        float64
	MeanSteps        float64
	MaxSteps         uint32
	UniqueIDs        int
	ModalID          uint32
	ModalCount       int
	Representative   string
	ApproxUniqueIDs  uint32 // Bloom cross-check, diagnostic only
}

// Cardinality is a running, non-authoritative cross-check on the number of
// distinct lineage IDs observed in the arena at stats ticks so far,
// maintained across ticks by a single Bloom filter. IDs minted and
// overwritten between two ticks are never observed. It is logged alongside (never instead of) the
// exact sort-based unique_ids column Compute returns.
type Cardinality struct {
	filter *bloom.BloomFilter
	seen   uint32
}

// NewCardinality sizes the filter for the arena's full address space with a
// 1% target false-positive rate at capacity.
func NewCardinality() *Cardinality {
	return &Cardinality{filter: bloom.NewWithEstimates(soup.N*soup.C, 0.01)}
}

// Observe feeds one lineage ID into the sketch.
func (c *Cardinality) Observe(id uint32) {
	key := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if !c.filter.TestAndAdd(key) {
		c.seen++
	}
}

// Approx returns the running distinct-ID estimate.
func (c *Cardinality) Approx() uint32 { return c.seen }

// Compute scans the arena's current state (quiescent: no worker is running)
// and produces one stats tick. pairSteps is the just-completed epoch's
// per-pair step counts, length N/2. card may be nil to skip the Bloom
// cross-check.
func Compute(epoch int, arena *soup.Arena, pairSteps []uint32, card *Cardinality) Tick {
	opCounts := make([]int, soup.N)
	ids := make([]uint32, 0, soup.N*soup.C)

	for i := 0; i < soup.N; i++ {
		ops := 0
		for j := 0; j < soup.C; j++ {
			tok := arena.Cells[i][j]
			if bff.IsInstruction(tok.Char()) {
				ops++
			}
			ids = append(ids, tok.ID())
			if card != nil {
				card.Observe(tok.ID())
			}
		}
		opCounts[i] = ops
	}

	meanOps := meanInt(opCounts)
	medianOps := medianByHistogram(opCounts, soup.C)

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	unique, modalID, modalCount := scanSortedIDs(ids)

	repIdx := representativeTape(arena, modalID)
	rendered := renderTape(arena.Cells[repIdx][:])

	meanSteps, maxSteps := stepSummary(pairSteps)

	tick := Tick{
		Epoch:          epoch,
		MeanOps:        meanOps,
		MedianOps:      medianOps,
		MeanSteps:      meanSteps,
		MaxSteps:       maxSteps,
		UniqueIDs:      unique,
		ModalID:        modalID,
		ModalCount:     modalCount,
		Representative: rendered,
	}
	if card != nil {
		tick.ApproxUniqueIDs = card.Approx()
	}
	return tick
}

func meanInt(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

// medianByHistogram computes the median of xs, each bounded in [0, maxVal],
// using a counting sort over the 0..maxVal histogram rather than a full
// comparison sort.
func medianByHistogram(xs []int, maxVal int) float64 {
	hist := make([]int, maxVal+1)
	for _, x := range xs {
		hist[x]++
	}
	n := len(xs)
	lowerIdx := (n - 1) / 2
	upperIdx := n / 2

	var lower, upper, cum int
	found := 0
	for v, count := range hist {
		cum += count
		for found <= upperIdx && cum > found {
			if found == lowerIdx {
				lower = v
			}
			if found == upperIdx {
				upper = v
			}
			found++
		}
	}
	return float64(lower+upper) / 2.0
}

// scanSortedIDs returns the distinct count and the modal ID (the longest
// run of equal values) with its occupancy.
func scanSortedIDs(sorted []uint32) (unique int, modalID uint32, modalCount int) {
	if len(sorted) == 0 {
		return 0, 0, 0
	}
	runStart := 0
	for i := 1; i <= len(sorted); i++ {
		if i == len(sorted) || sorted[i] != sorted[runStart] {
			runLen := i - runStart
			unique++
			if runLen > modalCount {
				modalCount = runLen
				modalID = sorted[runStart]
			}
			runStart = i
		}
	}
	return unique, modalID, modalCount
}

// representativeTape returns the index of the tape with the most cells
// whose id equals modalID, ties broken by smallest index.
func representativeTape(arena *soup.Arena, modalID uint32) int {
	best := 0
	bestCount := -1
	for i := 0; i < soup.N; i++ {
		count := 0
		for j := 0; j < soup.C; j++ {
			if arena.Cells[i][j].ID() == modalID {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = i
		}
	}
	return best
}

func renderTape(half []token.Token) string {
	b := make([]byte, len(half))
	for i, tok := range half {
		c := tok.Char()
		if bff.IsInstruction(c) {
			b[i] = c
		} else {
			b[i] = ' '
		}
	}
	return string(b)
}

func stepSummary(pairSteps []uint32) (mean float64, max uint32) {
	if len(pairSteps) == 0 {
		return 0, 0
	}
	var sum uint64
	for _, s := range pairSteps {
		sum += uint64(s)
		if s > max {
			max = s
		}
	}
	return float64(sum) / float64(len(pairSteps)), max
}
