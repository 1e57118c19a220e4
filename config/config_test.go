package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Epochs)
	assert.Equal(t, 100, cfg.StatsEvery)
	assert.Equal(t, 0.0, cfg.Mutation)
	assert.Greater(t, cfg.Threads, 0, "auto-detected thread count must be positive")
}

func TestParseOverridesAreOrderInsensitive(t *testing.T) {
	cfg, err := Parse([]string{"--mutation=0.01", "--epochs=5", "--threads=4", "--seed=42", "--stats=2"})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 2, cfg.StatsEvery)
	assert.Equal(t, 0.01, cfg.Mutation)
}

func TestParseUnknownFlagIsAnError(t *testing.T) {
	_, err := Parse([]string{"--not-a-real-flag"})
	assert.Error(t, err)
}

func TestParseRejectsOutOfRangeMutation(t *testing.T) {
	_, err := Parse([]string{"--mutation=1.5"})
	assert.Error(t, err)
}

func TestParseRejectsNegativeEpochs(t *testing.T) {
	_, err := Parse([]string{"--epochs=-1"})
	assert.Error(t, err)
}
