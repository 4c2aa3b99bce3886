package domain

// DocStatus is the processing lifecycle state of a document.
type DocStatus string

const (
	// StatusPending indicates a document queued but not yet started.
	StatusPending DocStatus = "PENDING"

	// StatusProcessing indicates a document currently being indexed.
	StatusProcessing DocStatus = "PROCESSING"

	// StatusProcessed indicates successful indexing.
	StatusProcessed DocStatus = "PROCESSED"

	// StatusFailed indicates indexing failed; ErrorMsg carries the cause.
	StatusFailed DocStatus = "FAILED"
)

// Document is an ingested document together with the IDs of everything
// derived from it. It is keyed in the store by its content-addressed ID
// and never mutated after creation except to be deleted.
type Document struct {
	// Content is the trimmed full text of the document.
	Content string `json:"content"`

	// FilePath is the originating file, or empty for direct text inserts.
	FilePath string `json:"file_path"`

	// ChunkIDs lists the document's chunks in chunk order.
	ChunkIDs []string `json:"chunk_ids"`

	// EntityIDs is the sorted set of entities mentioned by any chunk.
	EntityIDs []string `json:"entity_ids"`

	// RelationIDs is the sorted set of relations derived from any chunk.
	RelationIDs []string `json:"relation_ids"`

	// TrackID correlates the document with the operation that ingested it.
	TrackID string `json:"track_id"`

	// Metadata contains arbitrary key-value pairs from the caller.
	Metadata map[string]any `json:"metadata"`
}

// DocumentStatus records the processing lifecycle of one document.
// Created when processing starts, overwritten on completion or failure,
// removed when the document is deleted.
type DocumentStatus struct {
	// ID is the document's content-addressed ID.
	ID string `json:"id"`

	// ContentSummary is a whitespace-collapsed preview of the content.
	ContentSummary string `json:"content_summary"`

	// ContentLength is the length of the trimmed content in bytes.
	ContentLength int `json:"content_length"`

	// Status is the lifecycle state.
	Status DocStatus `json:"status"`

	// CreatedAt is when processing started, RFC 3339.
	CreatedAt string `json:"created_at"`

	// UpdatedAt is when the record was last written, RFC 3339.
	UpdatedAt string `json:"updated_at"`

	// TrackID correlates with the ingesting operation.
	TrackID string `json:"track_id"`

	// ChunksCount is the number of chunks produced, 0 on failure.
	ChunksCount int `json:"chunks_count"`

	// ErrorMsg carries the failure cause for FAILED documents.
	ErrorMsg string `json:"error_msg,omitempty"`

	// Metadata mirrors the document's metadata.
	Metadata map[string]any `json:"metadata,omitempty"`

	// FilePath is the originating file, or empty for direct text inserts.
	FilePath string `json:"file_path"`
}

// Chunk is one overlapping token window of a document.
// Chunks are owned by their parent document and deleted with it.
type Chunk struct {
	// Content is the chunk text (whitespace-joined tokens).
	Content string `json:"content"`

	// Tokens is the number of tokens in this chunk.
	Tokens int `json:"tokens"`

	// OrderIndex is the 0-based position among the document's chunks.
	OrderIndex int `json:"chunk_order_index"`

	// DocID is the parent document's ID. Empty until the chunk is
	// attached to a document by the pipeline.
	DocID string `json:"doc_id"`

	// FilePath mirrors the parent document's file path.
	FilePath string `json:"file_path"`
}
