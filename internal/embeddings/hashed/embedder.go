// Package hashed provides a deterministic digest-based embedding service.
//
// Vectors are derived from a cryptographic digest of the text, with no
// model and no network call. The determinism is load-bearing: identical
// text must always embed to the identical vector so that re-ingestion
// and tests are reproducible.
package hashed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// DefaultDimensions is the default embedding vector size.
const DefaultDimensions = 8

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Embedder slices a sha256 digest into fixed-point components in [0,1).
type Embedder struct {
	dimensions int
}

// New creates a new hashed embedder. Non-positive dimensions fall back
// to DefaultDimensions.
func New(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Embed derives the vector: the digest is sliced into 4-byte big-endian
// unsigned integers, each divided by 2^32. Dimensions beyond the digest
// length read zero-padded bytes.
func (e *Embedder) Embed(_ context.Context, text string) ([]float64, error) {
	digest := sha256.Sum256([]byte(text))

	vector := make([]float64, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		var word [4]byte
		for j := 0; j < 4; j++ {
			if idx := i*4 + j; idx < len(digest) {
				word[j] = digest[idx]
			}
		}
		vector[i] = float64(binary.BigEndian.Uint32(word[:])) / (1 << 32)
	}
	return vector, nil
}
