// Package memory provides in-memory adapter implementations for testing.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// Load and Persist deep-copy through JSON so callers cannot mutate the
// stored snapshot, mirroring the isolation of the file-backed stores.
type StateStore struct {
	mu     sync.RWMutex
	state  *domain.State
	status *domain.PipelineStatus
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		state:  domain.NewState(),
		status: domain.NewPipelineStatus(),
	}
}

// Load returns a deep copy of the current state.
func (s *StateStore) Load(_ context.Context) (*domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := domain.NewState()
	if err := deepCopy(s.state, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

// Persist replaces the stored state with a deep copy of the snapshot.
func (s *StateStore) Persist(_ context.Context, state *domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := domain.NewState()
	if err := deepCopy(state, copied); err != nil {
		return err
	}
	s.state = copied
	return nil
}

// LoadPipelineStatus returns a deep copy of the status singleton.
func (s *StateStore) LoadPipelineStatus(_ context.Context) (*domain.PipelineStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := domain.NewPipelineStatus()
	if err := deepCopy(s.status, copied); err != nil {
		return nil, err
	}
	if copied.HistoryMessages == nil {
		copied.HistoryMessages = []string{}
	}
	return copied, nil
}

// SavePipelineStatus replaces the status singleton.
func (s *StateStore) SavePipelineStatus(_ context.Context, status *domain.PipelineStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := domain.NewPipelineStatus()
	if err := deepCopy(status, copied); err != nil {
		return err
	}
	s.status = copied
	return nil
}

// Close releases resources.
func (s *StateStore) Close() error {
	return nil
}

// deepCopy round-trips src through JSON into dst.
func deepCopy(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
