package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, state.Docs)
	assert.Empty(t, state.DocStatus)
	assert.NotNil(t, state.Chunks, "mappings must be initialised")
	assert.NotNil(t, state.LLMCache)
}

func TestStore_PersistRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewState()
	docID := domain.DocID("hello world")
	state.Docs[docID] = domain.Document{
		Content:     "hello world",
		ChunkIDs:    []string{"chunk-1"},
		EntityIDs:   []string{},
		RelationIDs: []string{},
		TrackID:     "insert_abc",
	}
	state.DocStatus[docID] = domain.DocumentStatus{
		ID:             docID,
		ContentSummary: "hello world",
		ContentLength:  11,
		Status:         domain.StatusProcessed,
		ChunksCount:    1,
	}
	state.Chunks["chunk-1"] = domain.Chunk{Content: "hello world", Tokens: 2, DocID: docID}
	state.ChunkVectors["chunk-1"] = []float64{0.25, 0.5}
	state.Entities["entity-1"] = domain.Entity{Name: "Hello", Type: "auto", DocIDs: []string{docID}}
	state.LLMCache["extract:chunk-1"] = []any{"Hello"}

	require.NoError(t, store.Persist(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, state.Docs, loaded.Docs)
	assert.Equal(t, state.DocStatus, loaded.DocStatus)
	assert.Equal(t, state.Chunks, loaded.Chunks)
	assert.Equal(t, state.ChunkVectors, loaded.ChunkVectors)
	assert.Equal(t, state.Entities["entity-1"].Name, loaded.Entities["entity-1"].Name)
}

func TestStore_PersistWritesAllMappingFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Persist(context.Background(), domain.NewState()))

	for _, name := range []string{
		"kv_store_full_docs.json",
		"kv_store_doc_status.json",
		"kv_store_text_chunks.json",
		"kv_store_full_entities.json",
		"kv_store_full_relations.json",
		"vdb_chunks.json",
		"vdb_entities.json",
		"vdb_relationships.json",
		"kv_store_llm_response_cache.json",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}
}

func TestStore_PipelineStatusRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	status, err := store.LoadPipelineStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Busy)
	assert.NotNil(t, status.HistoryMessages)

	status.Busy = true
	status.JobName = "Inserting text"
	status.AppendHistory("Start job 'Inserting text' for 1 documents")
	require.NoError(t, store.SavePipelineStatus(ctx, status))

	reloaded, err := store.LoadPipelineStatus(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded.Busy)
	assert.Equal(t, "Inserting text", reloaded.JobName)
	require.Len(t, reloaded.HistoryMessages, 1)
}

func TestStore_NoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Persist(context.Background(), domain.NewState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp-")
	}
}
