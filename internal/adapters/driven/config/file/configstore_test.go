package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newTestStore(t)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".docgraph", "config.toml"), store.Path())

	_ = os.Remove(store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "config.toml"), store.Path())

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(KeyStorageBackend, "sqlite"))

	val, ok := store.Get(KeyStorageBackend)
	assert.True(t, ok)
	assert.Equal(t, "sqlite", val)

	val, ok = store.Get("embedding.unset")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(KeyStorageDataDir, "/data/graph"))
	require.NoError(t, store.Set(KeyChunkingMaxTokens, 200))
	require.NoError(t, store.Set("scan.autowatch", true))

	assert.Equal(t, "/data/graph", store.GetString(KeyStorageDataDir))
	assert.Equal(t, 200, store.GetInt(KeyChunkingMaxTokens))
	assert.True(t, store.GetBool("scan.autowatch"))

	// Missing keys yield zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))

	// Type mismatches yield zero values rather than panicking.
	assert.Equal(t, "", store.GetString(KeyChunkingMaxTokens))
	assert.Equal(t, 0, store.GetInt(KeyStorageDataDir))
	assert.False(t, store.GetBool(KeyStorageDataDir))
}

func TestConfigStore_GetInt_Int64(t *testing.T) {
	store, _ := newTestStore(t)

	// TOML unmarshals integers as int64.
	store.mu.Lock()
	store.data[KeyEmbeddingDimensions] = int64(768)
	store.mu.Unlock()

	assert.Equal(t, 768, store.GetInt(KeyEmbeddingDimensions))
}

func TestConfigStore_Persistence(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Set(KeyStorageBackend, "json"))
	require.NoError(t, store.Set(KeyChunkingOverlap, 40))
	require.NoError(t, store.Set("scan.autowatch", true))
	require.NoError(t, store.Set("embedding.temperature", 0.5))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "json", reloaded.GetString(KeyStorageBackend))
	assert.Equal(t, 40, reloaded.GetInt(KeyChunkingOverlap))
	assert.True(t, reloaded.GetBool("scan.autowatch"))
	floatVal, ok := reloaded.Get("embedding.temperature")
	assert.True(t, ok)
	assert.InDelta(t, 0.5, floatVal, 0.00001)
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(KeyEmbeddingModel, "nomic-embed-text"))
	require.NoError(t, store.Set(KeyEmbeddingModel, "all-minilm"))

	assert.Equal(t, "all-minilm", store.GetString(KeyEmbeddingModel))
}

func TestConfigStore_MissingFileStartsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	val, ok := store.Get(KeyStorageBackend)
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get(KeyStorageBackend)
	assert.False(t, ok)
}

func TestConfigStore_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("# generated by docgraph\n\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), content, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get(KeyStorageBackend)
	assert.False(t, ok)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set(KeyStorageBackend, "json"))

	corrupted := []byte("invalid toml syntax ][}{")
	require.NoError(t, os.WriteFile(store.Path(), corrupted, 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Load_ReadError(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set(KeyStorageBackend, "json"))

	require.NoError(t, os.Chmod(store.Path(), 0000))
	t.Cleanup(func() { _ = os.Chmod(store.Path(), 0600) })

	err := store.Load()
	assert.Error(t, err)
	assert.False(t, os.IsNotExist(err))
}

func TestConfigStore_Save(t *testing.T) {
	store, _ := newTestStore(t)

	store.mu.Lock()
	store.data[KeyInputDir] = "/data/inputs"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Equal(t, "/data/inputs", reloaded.GetString(KeyInputDir))
}

func TestConfigStore_Save_WriteError(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set(KeyStorageBackend, "json"))

	// Replace the file with a directory so the next write fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set(KeyStorageBackend, "sqlite"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, _ := newTestStore(t)

	// Channels cannot be marshalled to TOML.
	assert.Error(t, store.Set("bad", make(chan int)))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Set(KeyStorageBackend, "json"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestStore(t)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "worker." + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
