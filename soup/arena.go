// Package soup implements the primordial-soup driver's population state:
// a fixed arena of tapes, the epoch pairing shuffle, a persistent worker
// pool synchronized by barriers, and the Poisson mutator.
package soup

import (
	"github.com/dgedye-lab/bffsoup/rng"
	"github.com/dgedye-lab/bffsoup/token"
)

// N is the fixed population size: 2^17 tapes.
const N = 1 << 17

// C is the number of token cells per half-tape ("half" because a pair's two
// halves are concatenated into one full 128-cell BFF tape for execution).
const C = 64

// Arena holds the soup population: N half-tapes of C tokens each, the
// permutation buffer used to pair them, and the monotone ID counter. It is
// shared read-write across workers, but every epoch partitions it into
// pair-disjoint slices, so no locking is required during a pair's
// execution — only the driver thread touches next_id or perm.
type Arena struct {
	Cells  [N][C]token.Token
	Perm   []int
	NextID uint32
}

// NewArena allocates an arena and seeds every cell with a fresh token drawn
// from stream, minted at epoch 0.
func NewArena(stream *rng.Source) *Arena {
	a := &Arena{Perm: make([]int, N)}
	for i := 0; i < N; i++ {
		for j := 0; j < C; j++ {
			a.Cells[i][j] = token.New(a.NextID, 0, stream.Byte())
			a.NextID++
		}
	}
	return a
}

// MintAt overwrites the cell at (tapeIdx, cellIdx) with a fresh token in
// the given epoch, incrementing NextID. Only the driver thread calls this
// (initialisation and mutation); it is not safe to call concurrently with
// worker execution.
func (a *Arena) MintAt(tapeIdx, cellIdx int, epoch uint16, char byte) {
	a.Cells[tapeIdx][cellIdx] = token.New(a.NextID, epoch, char)
	a.NextID++
}
