package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := LoadSettings(store)

	assert.Equal(t, DefaultBackend, settings.Backend)
	assert.Equal(t, DefaultMaxTokens, settings.MaxTokens)
	assert.Equal(t, DefaultOverlap, settings.Overlap)
	assert.Equal(t, DefaultEmbeddingBackend, settings.EmbeddingBackend)
	assert.Equal(t, DefaultDimensions, settings.Dimensions)
	assert.Empty(t, settings.DataDir)
	assert.Empty(t, settings.InputDir)
}

func TestLoadSettings_ConfiguredValues(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyStorageBackend, "sqlite"))
	require.NoError(t, store.Set(KeyStorageDataDir, "/data/graph"))
	require.NoError(t, store.Set(KeyInputDir, "/data/inputs"))
	require.NoError(t, store.Set(KeyChunkingMaxTokens, 200))
	require.NoError(t, store.Set(KeyChunkingOverlap, 0))
	require.NoError(t, store.Set(KeyEmbeddingDimensions, 16))

	settings := LoadSettings(store)

	assert.Equal(t, "sqlite", settings.Backend)
	assert.Equal(t, "/data/graph", settings.DataDir)
	assert.Equal(t, "/data/inputs", settings.InputDir)
	assert.Equal(t, 200, settings.MaxTokens)
	assert.Equal(t, 0, settings.Overlap)
	assert.Equal(t, 16, settings.Dimensions)
}

func TestLoadSettings_RejectsOverlapAtOrAboveWindow(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyChunkingMaxTokens, 50))
	require.NoError(t, store.Set(KeyChunkingOverlap, 50))

	settings := LoadSettings(store)

	assert.Equal(t, 50, settings.MaxTokens)
	assert.Equal(t, DefaultOverlap, settings.Overlap)
}

func TestLoadSettings_ScalesOverlapForSmallWindows(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// Window smaller than the default overlap; no overlap key set.
	require.NoError(t, store.Set(KeyChunkingMaxTokens, 30))

	settings := LoadSettings(store)

	assert.Equal(t, 30, settings.MaxTokens)
	assert.Equal(t, 10, settings.Overlap)

	// A tiny window degrades to zero overlap rather than step-1 windows.
	require.NoError(t, store.Set(KeyChunkingMaxTokens, 2))
	settings = LoadSettings(store)
	assert.Equal(t, 0, settings.Overlap)
}
