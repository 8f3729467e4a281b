package config

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	logger := log.New(io.Discard, "", 0)

	cfg, err := Initialize(tempDir, logger)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Check that the written config loads and is valid.
	loaded, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.NoError(t, loaded.Validate())

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := Initialize(tempDir, logger)
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("accepts a path to the file itself", func(t *testing.T) {
		tempDir := t.TempDir()
		_, err := Initialize(tempDir, log.New(io.Discard, "", 0))
		require.NoError(t, err)

		cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
		require.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}
