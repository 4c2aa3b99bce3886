package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The default implementation is a deterministic digest-based stand-in
// for a real embedding model; determinism must be preserved for test
// reproducibility.
type EmbeddingService interface {
	// Embed generates a fixed-length vector with components in [0,1).
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
