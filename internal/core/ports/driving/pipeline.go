package driving

import (
	"context"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

// Result statuses returned by pipeline operations. The presentation
// layer maps these to its protocol (exit codes, HTTP statuses); the
// pipeline never performs that mapping itself.
const (
	ResultSuccess        = "success"
	ResultPartialSuccess = "partial_success"
	ResultFailure        = "failure"
	ResultDuplicated     = "duplicated"
	ResultNotFound       = "not_found"
	ResultScanStarted    = "scanning_started"
	ResultDeletionDone   = "deletion_started"
)

// OperationResult is the structured outcome of an ingest operation.
type OperationResult struct {
	// Status is one of the Result constants.
	Status string `json:"status"`

	// Message is a human-readable summary.
	Message string `json:"message"`

	// TrackID correlates the operation's documents for later queries.
	TrackID string `json:"track_id,omitempty"`
}

// DeletionResult is the outcome of a document deletion batch.
type DeletionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// DocIDs echoes the requested IDs.
	DocIDs []string `json:"doc_ids"`

	// Deleted lists IDs that were removed.
	Deleted []string `json:"deleted"`

	// NotFound lists requested IDs with no doc-status record.
	NotFound []string `json:"not_found"`
}

// GraphDeletionResult is the outcome of an entity or relation deletion.
type GraphDeletionResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// StatusCode is the HTTP-equivalent code (200 or 404).
	StatusCode int `json:"status_code"`
}

// DocumentsResult groups doc-status records by lifecycle state, each
// group sorted by UpdatedAt descending.
type DocumentsResult struct {
	Statuses map[domain.DocStatus][]domain.DocumentStatus `json:"statuses"`
}

// TrackStatusResult reports all documents ingested under one track ID.
type TrackStatusResult struct {
	TrackID       string                  `json:"track_id"`
	Documents     []domain.DocumentStatus `json:"documents"`
	TotalCount    int                     `json:"total_count"`
	StatusSummary map[string]int          `json:"status_summary"`
}

// PaginationRequest selects a page of doc-status records.
type PaginationRequest struct {
	// Page is 1-based.
	Page int

	// PageSize is the number of records per page.
	PageSize int

	// Status optionally filters by exact lifecycle state.
	Status string

	// SortField is one of created_at, updated_at, id, file_path.
	SortField string

	// SortDirection is asc or desc.
	SortDirection string
}

// PageInfo describes a returned page.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PaginatedResult is one page of doc-status records plus global counts.
type PaginatedResult struct {
	Documents    []domain.DocumentStatus `json:"documents"`
	Pagination   PageInfo                `json:"pagination"`
	StatusCounts map[string]int          `json:"status_counts"`
}

// Pipeline orchestrates document ingestion, deletion and status queries
// against the store. Mutating operations are serialised: no two may be
// in flight concurrently.
type Pipeline interface {
	// Scan ingests new supported files found in the input directory.
	Scan(ctx context.Context) (*OperationResult, error)

	// Upload copies a file into the input directory and ingests it.
	Upload(ctx context.Context, path string) (*OperationResult, error)

	// InsertText ingests a single text with an optional source label.
	InsertText(ctx context.Context, text, source string) (*OperationResult, error)

	// InsertTexts ingests multiple texts; sources must be empty or match
	// texts in length.
	InsertTexts(ctx context.Context, texts, sources []string) (*OperationResult, error)

	// DeleteDocuments cascade-removes documents and their derived records.
	DeleteDocuments(ctx context.Context, ids []string) (*DeletionResult, error)

	// ClearDocuments resets the store and deletes all input files.
	ClearDocuments(ctx context.Context) (*OperationResult, error)

	// ClearCache empties the extraction response cache.
	ClearCache(ctx context.Context) (*OperationResult, error)

	// DeleteEntity removes an entity by name with cascades to its relations.
	DeleteEntity(ctx context.Context, name string) (*GraphDeletionResult, error)

	// DeleteRelation removes the relation between two entity IDs.
	DeleteRelation(ctx context.Context, source, target string) (*GraphDeletionResult, error)

	// Documents returns all doc-status records grouped by state.
	Documents(ctx context.Context) (*DocumentsResult, error)

	// PipelineStatus returns the job status singleton.
	PipelineStatus(ctx context.Context) (*domain.PipelineStatus, error)

	// TrackStatus returns the documents ingested under a track ID.
	TrackStatus(ctx context.Context, trackID string) (*TrackStatusResult, error)

	// Paginated returns a filtered, sorted page of doc-status records.
	Paginated(ctx context.Context, req PaginationRequest) (*PaginatedResult, error)

	// StatusCounts tallies doc-status records by state.
	StatusCounts(ctx context.Context) (map[string]int, error)
}
