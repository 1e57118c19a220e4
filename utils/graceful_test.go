package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulShutdownRunsAllFunctions(t *testing.T) {
	var buf bytes.Buffer
	g := NewGracefulShutdown(time.Second, NewLogger(LoggerConfig{Level: INFO, Output: &buf}))

	called := make([]bool, 2)
	g.Register(func() error { called[0] = true; return nil })
	g.Register(func() error { called[1] = true; return nil })

	require.NoError(t, g.Shutdown(context.Background()))
	assert.True(t, called[0])
	assert.True(t, called[1])
}

func TestGracefulShutdownReportsError(t *testing.T) {
	var buf bytes.Buffer
	g := NewGracefulShutdown(time.Second, NewLogger(LoggerConfig{Level: ERROR, Output: &buf}))

	g.Register(func() error { return errors.New("boom") })

	err := g.Shutdown(context.Background())
	// Individual failures are logged; Shutdown itself only reports a
	// timeout as an error, so a fast-failing function still returns nil.
	assert.NoError(t, err)
}
