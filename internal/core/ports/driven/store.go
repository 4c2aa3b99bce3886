package driven

import (
	"context"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

// StateStore persists the full store snapshot and the pipeline status.
//
// The store follows a load/mutate/persist-whole-state discipline: every
// mutating pipeline operation loads the entire state, mutates it in
// memory, then persists it back in one step. There is no partial or
// incremental persistence. Implementations must not leave the state
// partially written on failure (write-to-temp-then-rename or a
// transaction).
type StateStore interface {
	// Load reads the full state. A missing or empty store yields an
	// initialised empty state, not an error.
	Load(ctx context.Context) (*domain.State, error)

	// Persist writes the full state back out.
	Persist(ctx context.Context, state *domain.State) error

	// LoadPipelineStatus reads the pipeline status singleton.
	// A missing record yields an idle status.
	LoadPipelineStatus(ctx context.Context) (*domain.PipelineStatus, error)

	// SavePipelineStatus writes the pipeline status singleton.
	SavePipelineStatus(ctx context.Context, status *domain.PipelineStatus) error

	// Close releases resources.
	Close() error
}
