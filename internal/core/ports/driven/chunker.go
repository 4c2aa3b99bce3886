package driven

import (
	"context"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

// Chunker splits document text into overlapping token windows.
type Chunker interface {
	// Chunk returns the windows in order with Content, Tokens and
	// OrderIndex populated; DocID and FilePath are attached by the
	// pipeline. Empty or whitespace-only text yields no chunks.
	Chunk(ctx context.Context, text string) ([]domain.Chunk, error)
}
