package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: WARN, Output: &buf, Component: "x"})

	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "[x]")
}

func TestFieldsAreRendered(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: DEBUG, Output: &buf})

	l.Info("epoch done", Int("epoch", 7), Uint64("seed", 42))

	out := buf.String()
	assert.True(t, strings.Contains(out, "epoch=7"))
	assert.True(t, strings.Contains(out, "seed=42"))
}

func TestWithScopesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: DEBUG, Output: &buf, Component: "parent"})
	child := l.With("child")

	child.Info("hi")
	assert.Contains(t, buf.String(), "[child]")
}
