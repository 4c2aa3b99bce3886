package driven

import (
	"context"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

// GraphExporter serialises the document/chunk/entity/relation graph to a
// portable graph file. The export is regenerated in full after every
// successful mutating operation; there are no incremental edits.
type GraphExporter interface {
	// Export rewrites the graph file from the given state.
	Export(ctx context.Context, state *domain.State) error

	// Path returns the export file location.
	Path() string
}
