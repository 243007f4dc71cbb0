package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsNop(t *testing.T) {
	l := New()
	require.NotNil(t, l.Log)

	// safe to log before Init
	l.Info("message", "key", "value")
}

func TestInit(t *testing.T) {
	l := New()

	require.NoError(t, l.Init("Info"))
	assert.NotNil(t, l.Log)

	assert.Error(t, l.Init("not-a-level"))
}
