package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractorRegistry = (*Registry)(nil)

// Registry dispatches text extraction by file extension. Later
// registrations win when two extractors claim the same extension.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.TextExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]driven.TextExtractor)}
}

// Register adds an extractor for each of its supported extensions.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range extractor.SupportedExtensions() {
		r.extractors[strings.ToLower(ext)] = extractor
	}
}

// IsSupported reports whether any extractor handles the filename.
func (r *Registry) IsSupported(filename string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extract converts the file to plain text using the matching extractor.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	extractor, ok := r.extractors[ext]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}
	return extractor.Extract(ctx, path)
}
