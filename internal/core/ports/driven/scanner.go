package driven

import "context"

// InputScanner enumerates and manages candidate files in the input
// directory. It is the pipeline's view of the filesystem: scanning for
// new files, validating upload names, and clearing ingested inputs.
type InputScanner interface {
	// Dir returns the input directory path.
	Dir() string

	// ScanNewFiles returns supported files not in the processed set,
	// sorted by path.
	ScanNewFiles(ctx context.Context, processed map[string]bool) ([]string, error)

	// IsSupported reports whether the filename's extension is ingestible.
	IsSupported(filename string) bool

	// SanitizeFilename strips path traversal characters and verifies the
	// result resolves inside the input directory.
	SanitizeFilename(filename string) (string, error)

	// UniqueName appends a numeric suffix until the name is free on disk.
	UniqueName(filename string) string

	// RemoveAll deletes every file in the input directory, returning the
	// number removed.
	RemoveAll(ctx context.Context) (int, error)

	// Watch emits the path of each supported file created in the input
	// directory until ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, <-chan error, error)
}
