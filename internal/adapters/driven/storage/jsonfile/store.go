package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Mapping file names, matching the portable store layout.
const (
	docsFile            = "kv_store_full_docs.json"
	docStatusFile       = "kv_store_doc_status.json"
	chunksFile          = "kv_store_text_chunks.json"
	entitiesFile        = "kv_store_full_entities.json"
	relationsFile       = "kv_store_full_relations.json"
	chunkVectorsFile    = "vdb_chunks.json"
	entityVectorsFile   = "vdb_entities.json"
	relationVectorsFile = "vdb_relationships.json"
	llmCacheFile        = "kv_store_llm_response_cache.json"
	pipelineStatusFile  = "pipeline_status.json"
)

// Ensure Store implements the interface.
var _ driven.StateStore = (*Store)(nil)

// Store is a whole-file JSON implementation of driven.StateStore.
type Store struct {
	dataDir string
}

// NewStore creates a JSON-file store rooted at dataDir, creating the
// directory if needed.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docgraph", "rag_storage")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// Path returns the data directory.
func (s *Store) Path() string {
	return s.dataDir
}

// Close releases resources. The JSON store holds no open handles.
func (s *Store) Close() error {
	return nil
}

// Load reads every mapping file into a state snapshot. Missing files
// yield empty mappings.
func (s *Store) Load(_ context.Context) (*domain.State, error) {
	state := domain.NewState()

	loads := []struct {
		file string
		dst  any
	}{
		{docsFile, &state.Docs},
		{docStatusFile, &state.DocStatus},
		{chunksFile, &state.Chunks},
		{entitiesFile, &state.Entities},
		{relationsFile, &state.Relations},
		{chunkVectorsFile, &state.ChunkVectors},
		{entityVectorsFile, &state.EntityVectors},
		{relationVectorsFile, &state.RelationVectors},
		{llmCacheFile, &state.LLMCache},
	}

	for _, l := range loads {
		if err := s.readMapping(l.file, l.dst); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Persist rewrites every mapping file from the state snapshot.
func (s *Store) Persist(_ context.Context, state *domain.State) error {
	saves := []struct {
		file string
		src  any
	}{
		{docsFile, state.Docs},
		{docStatusFile, state.DocStatus},
		{chunksFile, state.Chunks},
		{entitiesFile, state.Entities},
		{relationsFile, state.Relations},
		{chunkVectorsFile, state.ChunkVectors},
		{entityVectorsFile, state.EntityVectors},
		{relationVectorsFile, state.RelationVectors},
		{llmCacheFile, state.LLMCache},
	}

	for _, sv := range saves {
		if err := s.writeMapping(sv.file, sv.src); err != nil {
			return err
		}
	}
	return nil
}

// LoadPipelineStatus reads the pipeline status singleton, returning an
// idle status when the file does not exist.
func (s *Store) LoadPipelineStatus(_ context.Context) (*domain.PipelineStatus, error) {
	status := domain.NewPipelineStatus()
	if err := s.readMapping(pipelineStatusFile, status); err != nil {
		return nil, err
	}
	if status.HistoryMessages == nil {
		status.HistoryMessages = []string{}
	}
	return status, nil
}

// SavePipelineStatus writes the pipeline status singleton.
func (s *Store) SavePipelineStatus(_ context.Context, status *domain.PipelineStatus) error {
	return s.writeMapping(pipelineStatusFile, status)
}

// readMapping decodes one mapping file into dst; missing files leave
// dst untouched.
func (s *Store) readMapping(file string, dst any) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", file, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", file, err)
	}
	return nil
}

// writeMapping encodes src and renames a temp file into place.
func (s *Store) writeMapping(file string, src any) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", file, err)
	}

	target := filepath.Join(s.dataDir, file)
	tmp, err := os.CreateTemp(s.dataDir, file+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", file, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", file, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", file, err)
	}
	return nil
}
