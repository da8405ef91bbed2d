package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	first, err := Init("development")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := Init("production")
	require.NoError(t, err)
	assert.Same(t, first, second, "Init keeps the first logger")
	assert.Same(t, first, Base())
}

func TestGORMWriterPrintf(t *testing.T) {
	// Exercised for panics only; output goes through the global logger.
	assert.NotPanics(t, func() {
		NewGORMWriter().Printf("slow query: %s\n", "SELECT 1")
	})
}

func TestSyncWithoutInitIsSafe(t *testing.T) {
	assert.NotPanics(t, Sync)
}
