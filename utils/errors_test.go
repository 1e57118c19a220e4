package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := WrapError(cause, "append failed")

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "append failed")
}

func TestWrapErrorNilCause(t *testing.T) {
	err := WrapError(nil, "no cause")
	assert.EqualError(t, err, "no cause")
}
