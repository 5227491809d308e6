package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadOptionalFile tests the code pair file helper
func TestReadOptionalFile(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		content, err := readOptionalFile("")
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("ExistingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "before.go")
		require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o600))

		content, err := readOptionalFile(path)
		require.NoError(t, err)
		assert.Equal(t, "package main\n", content)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := readOptionalFile(filepath.Join(t.TempDir(), "nope.go"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})
}

// TestFirstLine tests subject line extraction
func TestFirstLine(t *testing.T) {
	assert.Equal(t, "feat: add login", firstLine("feat: add login\n\n- details"))
	assert.Equal(t, "single line", firstLine("single line"))
	assert.Empty(t, firstLine(""))
	assert.Empty(t, firstLine("\nbody only"))
}
