package soup

import "github.com/dgedye-lab/bffsoup/rng"

// Shuffle performs an in-place Fisher-Yates shuffle of a.Perm using stream.
// Every call re-initialises Perm[i]=i before shuffling, so
// the result is always a fresh uniform permutation of [0, N).
func (a *Arena) Shuffle(stream *rng.Source) {
	for i := range a.Perm {
		a.Perm[i] = i
	}
	for i := N - 1; i >= 1; i-- {
		j := stream.IntN(i + 1)
		a.Perm[i], a.Perm[j] = a.Perm[j], a.Perm[i]
	}
}

// Pair returns the arena indices making up pair i, for i in [0, N/2).
func (a *Arena) Pair(i int) (x, y int) {
	return a.Perm[i], a.Perm[i+N/2]
}
