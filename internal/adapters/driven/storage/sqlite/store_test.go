package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Docs)
	assert.NotNil(t, state.EntityVectors)
}

func TestStore_PersistRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewState()
	docID := domain.DocID("transactional persistence")
	state.Docs[docID] = domain.Document{
		Content:     "transactional persistence",
		ChunkIDs:    []string{"chunk-a"},
		EntityIDs:   []string{},
		RelationIDs: []string{},
	}
	state.Chunks["chunk-a"] = domain.Chunk{Content: "transactional persistence", Tokens: 2, DocID: docID}
	state.Relations["relation-x"] = domain.Relation{
		Source:      "entity-1",
		Target:      "entity-2",
		Description: "Alpha related to Bravo",
		DocIDs:      []string{docID},
	}
	state.RelationVectors["relation-x"] = []float64{0.1, 0.9}

	require.NoError(t, store.Persist(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Docs, loaded.Docs)
	assert.Equal(t, state.Chunks, loaded.Chunks)
	assert.Equal(t, state.Relations, loaded.Relations)
	assert.Equal(t, state.RelationVectors, loaded.RelationVectors)
}

func TestStore_PersistReplacesState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewState()
	state.Docs["doc-old"] = domain.Document{Content: "old"}
	require.NoError(t, store.Persist(ctx, state))

	// Persisting an empty state removes earlier records.
	require.NoError(t, store.Persist(ctx, domain.NewState()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Docs)
}

func TestStore_PipelineStatusRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	status, err := store.LoadPipelineStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Busy)

	status.Busy = true
	status.JobName = "Scanning input directory"
	status.Docs = 3
	status.AppendHistory("Start job 'Scanning input directory' for 3 documents")
	require.NoError(t, store.SavePipelineStatus(ctx, status))

	reloaded, err := store.LoadPipelineStatus(ctx)
	require.NoError(t, err)
	assert.True(t, reloaded.Busy)
	assert.Equal(t, 3, reloaded.Docs)
	require.Len(t, reloaded.HistoryMessages, 1)
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
