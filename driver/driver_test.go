package driver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgedye-lab/bffsoup/config"
	"github.com/dgedye-lab/bffsoup/utils"
)

func TestRunEmitsHeaderAndTicks(t *testing.T) {
	cfg := config.Config{
		Epochs:     1,
		Threads:    2,
		Seed:       123,
		StatsEvery: 1,
		Mutation:   0,
	}

	var out bytes.Buffer
	logger := utils.NewLogger(utils.LoggerConfig{Level: utils.ERROR, Output: &bytes.Buffer{}})

	err := Run(cfg, &out, logger)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header + epoch-0 row + epoch-1 row")
	assert.True(t, strings.HasPrefix(lines[0], "epoch\t"))
	assert.True(t, strings.HasPrefix(lines[1], "0\t"))
	assert.True(t, strings.HasPrefix(lines[2], "1\t"))
}

func TestRunRejectsUnwritableRunLog(t *testing.T) {
	cfg := config.Config{
		Epochs:     0,
		Threads:    1,
		StatsEvery: 1,
		RunLogPath: "/nonexistent-dir/that/does/not/exist/run.bin",
	}

	var out bytes.Buffer
	logger := utils.NewLogger(utils.LoggerConfig{Level: utils.ERROR, Output: &bytes.Buffer{}})

	err := Run(cfg, &out, logger)
	assert.Error(t, err)
}
