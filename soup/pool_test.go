package soup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgedye-lab/bffsoup/rng"
)

func TestRunEpochProducesFullStepCounts(t *testing.T) {
	arena := NewArena(rng.New(1))
	arena.Shuffle(rng.New(2))
	pool := NewPool(4, arena)
	defer pool.Shutdown()

	global := rng.New(3)
	steps := pool.RunEpoch(global)

	require.Len(t, steps, N/2)
	for _, s := range steps {
		assert.LessOrEqual(t, int(s), 8192)
		assert.Greater(t, int(s), 0)
	}
}

func TestRunEpochIsDeterministicGivenSameSeeds(t *testing.T) {
	run := func() []uint32 {
		arena := NewArena(rng.New(11))
		arena.Shuffle(rng.New(22))
		pool := NewPool(2, arena)
		defer pool.Shutdown()

		global := rng.New(33)
		steps := pool.RunEpoch(global)
		out := make([]uint32, len(steps))
		copy(out, steps)
		return out
	}

	a := run()
	b := run()
	assert.Equal(t, a, b, "identical seeds and thread count must produce identical step counts")
}

func TestShutdownJoinsAllWorkers(t *testing.T) {
	arena := NewArena(rng.New(1))
	pool := NewPool(3, arena)
	pool.Shutdown()
}
