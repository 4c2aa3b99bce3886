package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a document whose text yields no chunks.
	ErrEmptyDocument = errors.New("document content is empty")

	// ErrUnsupportedType indicates a file type with no registered extractor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsafeFilename indicates a filename that escapes the input directory.
	ErrUnsafeFilename = errors.New("unsafe filename")

	// ErrJobInProgress indicates a batch job is already running.
	ErrJobInProgress = errors.New("job in progress")
)
