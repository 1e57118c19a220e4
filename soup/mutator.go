package soup

import (
	"math"

	"github.com/dgedye-lab/bffsoup/rng"
)

// PoissonKnuth draws k ~ Poisson(lambda) by Knuth's product-of-uniforms
// method. For lambda == 0 it always returns 0 without drawing. Rates above
// 500 are drawn as a sum of independent Poisson draws of at most 500 each,
// since exp(-lambda) underflows float64 once lambda passes about 745.
func PoissonKnuth(stream *rng.Source, lambda float64) int {
	k := 0
	for lambda > 0 {
		chunk := math.Min(lambda, 500)
		lambda -= chunk
		l := math.Exp(-chunk)
		p := 1.0
		for {
			p *= stream.Float64()
			if p <= l {
				break
			}
			k++
		}
	}
	return k
}

// Mutate applies Poisson(lambda = N*C*rate) fresh-token writes at uniformly
// random arena positions, minted in the given epoch. It runs only on the
// driver thread, between the end-of-epoch barrier and stats, so it never
// races a worker.
func (a *Arena) Mutate(stream *rng.Source, rate float64, epoch uint16) int {
	lambda := float64(N) * float64(C) * rate
	k := PoissonKnuth(stream, lambda)

	for i := 0; i < k; i++ {
		pos := stream.IntN(N * C)
		tapeIdx := pos / C
		cellIdx := pos % C
		a.MintAt(tapeIdx, cellIdx, epoch, stream.Byte())
	}
	return k
}
