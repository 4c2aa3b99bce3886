// Package plaintext extracts text from files that are already plain
// text: documents, config formats and source code.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{
		".txt", ".md", ".log",
		".csv", ".json", ".xml", ".yaml", ".yml",
		".conf", ".ini", ".properties",
		".sql", ".py", ".js", ".ts", ".java",
		".cpp", ".c", ".go", ".rb", ".php",
	}
}

// Extract reads the file content as-is.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
