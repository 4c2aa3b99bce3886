package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
)

// Pagination bounds.
const (
	defaultPageSize = 10
	maxPageSize     = 200
)

// Documents returns all doc-status records grouped by lifecycle state,
// each group sorted by UpdatedAt descending.
func (s *PipelineService) Documents(ctx context.Context) (*driving.DocumentsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &driving.DocumentsResult{
		Statuses: map[domain.DocStatus][]domain.DocumentStatus{
			domain.StatusPending:    {},
			domain.StatusProcessing: {},
			domain.StatusProcessed:  {},
			domain.StatusFailed:     {},
		},
	}
	for _, record := range state.DocStatus {
		result.Statuses[record.Status] = append(result.Statuses[record.Status], record)
	}

	for status, records := range result.Statuses {
		sort.Slice(records, func(i, j int) bool {
			if records[i].UpdatedAt != records[j].UpdatedAt {
				return records[i].UpdatedAt > records[j].UpdatedAt
			}
			return records[i].ID < records[j].ID
		})
		result.Statuses[status] = records
	}

	return result, nil
}

// PipelineStatus returns the job status singleton.
func (s *PipelineService) PipelineStatus(ctx context.Context) (*domain.PipelineStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadPipelineStatus(ctx)
}

// TrackStatus returns the documents ingested under one track ID.
func (s *PipelineService) TrackStatus(ctx context.Context, trackID string) (*driving.TrackStatusResult, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: track ID is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &driving.TrackStatusResult{
		TrackID:       trackID,
		Documents:     []domain.DocumentStatus{},
		StatusSummary: make(map[string]int),
	}
	for _, record := range state.DocStatus {
		if record.TrackID != trackID {
			continue
		}
		result.Documents = append(result.Documents, record)
		result.StatusSummary[string(record.Status)]++
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		if result.Documents[i].CreatedAt != result.Documents[j].CreatedAt {
			return result.Documents[i].CreatedAt < result.Documents[j].CreatedAt
		}
		return result.Documents[i].ID < result.Documents[j].ID
	})
	result.TotalCount = len(result.Documents)

	return result, nil
}

// Paginated returns a filtered, sorted page of doc-status records.
func (s *PipelineService) Paginated(ctx context.Context, req driving.PaginationRequest) (*driving.PaginatedResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}
	sortField := req.SortField
	switch sortField {
	case "created_at", "updated_at", "id", "file_path":
	default:
		sortField = "updated_at"
	}
	ascending := req.SortDirection == "asc"

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	var records []domain.DocumentStatus
	for _, record := range state.DocStatus {
		if req.Status != "" && string(record.Status) != req.Status {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := sortKey(records[i], sortField), sortKey(records[j], sortField)
		if a != b {
			if ascending {
				return a < b
			}
			return a > b
		}
		return records[i].ID < records[j].ID
	})

	total := len(records)
	totalPages := (total + req.PageSize - 1) / req.PageSize

	start := (req.Page - 1) * req.PageSize
	end := start + req.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	page := records[start:end]
	if page == nil {
		page = []domain.DocumentStatus{}
	}

	return &driving.PaginatedResult{
		Documents: page,
		Pagination: driving.PageInfo{
			Page:       req.Page,
			PageSize:   req.PageSize,
			TotalCount: total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
		StatusCounts: state.StatusCounts(),
	}, nil
}

// StatusCounts tallies doc-status records by lifecycle state.
func (s *PipelineService) StatusCounts(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.StatusCounts(), nil
}

// sortKey selects the comparable field for pagination sorting.
func sortKey(record domain.DocumentStatus, field string) string {
	switch field {
	case "created_at":
		return record.CreatedAt
	case "id":
		return record.ID
	case "file_path":
		return record.FilePath
	default:
		return record.UpdatedAt
	}
}
