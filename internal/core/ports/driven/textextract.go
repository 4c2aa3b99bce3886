package driven

import "context"

// TextExtractor converts one family of file types to plain text.
type TextExtractor interface {
	// SupportedExtensions returns lower-cased extensions including the dot.
	SupportedExtensions() []string

	// Extract reads the file and returns its plain text content.
	Extract(ctx context.Context, path string) (string, error)
}

// TextExtractorRegistry dispatches to the extractor registered for a
// file's extension.
type TextExtractorRegistry interface {
	// Extract converts the file to plain text using the matching
	// extractor, or returns domain.ErrUnsupportedType.
	Extract(ctx context.Context, path string) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor TextExtractor)

	// IsSupported reports whether any extractor handles the filename.
	IsSupported(filename string) bool
}
