package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCorrelationID(t *testing.T) {
	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	require.Len(t, id1, 16)
	assert.NotEqual(t, id1, id2)
}

func TestWithCorrelationID(t *testing.T) {
	t.Run("copies config with new ID", func(t *testing.T) {
		original := &LogConfig{LogLevel: "debug", Verbose: 2}
		updated := original.WithCorrelationID("abc123")

		assert.Equal(t, "abc123", updated.CorrelationID)
		assert.Equal(t, "debug", updated.LogLevel)
		assert.Equal(t, 2, updated.Verbose)
		assert.Empty(t, original.CorrelationID, "original must not be mutated")
	})

	t.Run("nil receiver returns fresh config", func(t *testing.T) {
		var lc *LogConfig
		updated := lc.WithCorrelationID("xyz")
		require.NotNil(t, updated)
		assert.Equal(t, "xyz", updated.CorrelationID)
	})
}
