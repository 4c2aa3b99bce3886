package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docgraph-cli/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineService orchestrates document indexing: chunking, embedding,
// entity extraction and knowledge-graph maintenance. A mutex serialises
// mutating operations; the store sees exactly one writer at a time.
type PipelineService struct {
	mu        sync.Mutex
	store     driven.StateStore
	chunker   driven.Chunker
	extractor driven.EntityExtractor
	embedder  driven.EmbeddingService
	exporter  driven.GraphExporter
	scanner   driven.InputScanner
	texts     driven.TextExtractorRegistry
}

// NewPipelineService creates the pipeline with its collaborators.
func NewPipelineService(
	store driven.StateStore,
	chunker driven.Chunker,
	extractor driven.EntityExtractor,
	embedder driven.EmbeddingService,
	exporter driven.GraphExporter,
	scanner driven.InputScanner,
	texts driven.TextExtractorRegistry,
) *PipelineService {
	return &PipelineService{
		store:     store,
		chunker:   chunker,
		extractor: extractor,
		embedder:  embedder,
		exporter:  exporter,
		scanner:   scanner,
		texts:     texts,
	}
}

// newTrackID derives a correlation ID for one operation.
func newTrackID(operation string) string {
	return operation + "_" + uuid.New().String()
}

// ingestInput is one document queued for indexing.
type ingestInput struct {
	content  string
	filePath string
}

// Scan ingests new supported files found in the input directory.
func (s *PipelineService) Scan(ctx context.Context) (*driving.OperationResult, error) {
	trackID := newTrackID("scan")

	s.mu.Lock()
	state, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	paths, err := s.scanner.ScanNewFiles(ctx, state.ProcessedFilePaths())
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		if err := s.markAutoscanned(ctx); err != nil {
			return nil, err
		}
		return &driving.OperationResult{
			Status:  driving.ResultScanStarted,
			Message: "No new files to index.",
			TrackID: trackID,
		}, nil
	}

	inputs := make([]ingestInput, 0, len(paths))
	for _, path := range paths {
		text, err := s.texts.Extract(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		inputs = append(inputs, ingestInput{content: text, filePath: filepath.Base(path)})
	}

	result, err := s.processInputs(ctx, inputs, trackID, "Scanning input directory")
	if err != nil {
		return nil, err
	}
	if err := s.markAutoscanned(ctx); err != nil {
		return nil, err
	}

	result.Status = driving.ResultScanStarted
	return result, nil
}

// Upload copies a file into the input directory and ingests it. An
// existing file with identical content short-circuits as duplicated;
// one with different content is stored under a suffixed name.
func (s *PipelineService) Upload(ctx context.Context, path string) (*driving.OperationResult, error) {
	name, err := s.scanner.SanitizeFilename(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if !s.scanner.IsSupported(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(name))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	target := filepath.Join(s.scanner.Dir(), name)
	if existing, err := os.ReadFile(target); err == nil {
		if string(existing) == string(content) {
			return &driving.OperationResult{
				Status:  driving.ResultDuplicated,
				Message: fmt.Sprintf("File '%s' already exists in the input directory.", name),
			}, nil
		}
		name = s.scanner.UniqueName(name)
		target = filepath.Join(s.scanner.Dir(), name)
	}

	if err := copyFile(path, target); err != nil {
		return nil, err
	}

	text, err := s.texts.Extract(ctx, target)
	if err != nil {
		return nil, err
	}

	return s.processInputs(ctx,
		[]ingestInput{{content: text, filePath: name}},
		newTrackID("upload"), fmt.Sprintf("Indexing uploaded file '%s'", name))
}

// InsertText ingests a single text with an optional source label.
func (s *PipelineService) InsertText(ctx context.Context, text, source string) (*driving.OperationResult, error) {
	return s.processInputs(ctx,
		[]ingestInput{{content: text, filePath: source}},
		newTrackID("insert"), "Inserting text")
}

// InsertTexts ingests multiple texts; sources must be empty or match
// texts in length.
func (s *PipelineService) InsertTexts(ctx context.Context, texts, sources []string) (*driving.OperationResult, error) {
	if len(sources) != 0 && len(sources) != len(texts) {
		return nil, fmt.Errorf("%w: got %d sources for %d texts",
			domain.ErrInvalidInput, len(sources), len(texts))
	}

	inputs := make([]ingestInput, 0, len(texts))
	for i, text := range texts {
		input := ingestInput{content: text}
		if len(sources) != 0 {
			input.filePath = sources[i]
		}
		inputs = append(inputs, input)
	}

	return s.processInputs(ctx, inputs, newTrackID("insert"),
		fmt.Sprintf("Inserting %d texts", len(texts)))
}

// processInputs runs one indexing job: deduplicate, process each new
// document, keep the status singleton current, persist and export.
func (s *PipelineService) processInputs(ctx context.Context, inputs []ingestInput, trackID, jobName string) (*driving.OperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.store.LoadPipelineStatus(ctx)
	if err != nil {
		return nil, err
	}

	if status.Busy {
		status.RequestPending = true
		if err := s.store.SavePipelineStatus(ctx, status); err != nil {
			return nil, err
		}
		return nil, domain.ErrJobInProgress
	}

	// Deduplicate against the store and within the batch.
	var toProcess []ingestInput
	duplicated := 0
	seen := make(map[string]bool)
	for _, input := range inputs {
		input.content = strings.TrimSpace(input.content)
		docID := domain.DocID(input.content)
		if seen[docID] {
			duplicated++
			continue
		}
		// Presence of a doc-status record rejects re-processing, so a
		// failed document keeps its record instead of changing state.
		if _, exists := state.DocStatus[docID]; exists {
			logger.Debug("duplicate document %s", docID)
			duplicated++
			continue
		}
		seen[docID] = true
		toProcess = append(toProcess, input)
	}

	if len(toProcess) == 0 {
		return &driving.OperationResult{
			Status:  driving.ResultDuplicated,
			Message: "No new unique documents were found.",
			TrackID: trackID,
		}, nil
	}

	if err := s.startJob(ctx, status, jobName, len(toProcess)); err != nil {
		return nil, err
	}

	processed, failed := 0, 0
	for i, input := range toProcess {
		docID := domain.DocID(input.content)

		status.CurBatch = i + 1
		status.LatestMessage = "Processing " + docID
		status.AppendHistory(status.LatestMessage)
		if err := s.store.SavePipelineStatus(ctx, status); err != nil {
			return nil, err
		}

		now := domain.Now()
		state.DocStatus[docID] = domain.DocumentStatus{
			ID:             docID,
			ContentSummary: domain.Summary(input.content, domain.SummaryLimit),
			ContentLength:  len(input.content),
			Status:         domain.StatusProcessing,
			CreatedAt:      now,
			UpdatedAt:      now,
			TrackID:        trackID,
			FilePath:       input.filePath,
		}

		chunksCount, err := s.indexDocument(ctx, state, docID, input, trackID)
		record := state.DocStatus[docID]
		record.UpdatedAt = domain.Now()
		if err != nil {
			logger.Warn("indexing %s failed: %v", docID, err)
			record.Status = domain.StatusFailed
			record.ErrorMsg = err.Error()
			failed++
		} else {
			record.Status = domain.StatusProcessed
			record.ChunksCount = chunksCount
			processed++
		}
		state.DocStatus[docID] = record
	}

	completion := fmt.Sprintf("Job '%s' finished: %d processed, %d failed", jobName, processed, failed)
	if err := s.completeJob(ctx, status, completion); err != nil {
		return nil, err
	}

	if err := s.persistAndExport(ctx, state); err != nil {
		return nil, err
	}

	return ingestResult(processed, failed, duplicated, trackID), nil
}

// indexDocument chunks, embeds and extracts one document into the
// state, returning the number of chunks produced.
func (s *PipelineService) indexDocument(ctx context.Context, state *domain.State, docID string, input ingestInput, trackID string) (int, error) {
	chunks, err := s.chunker.Chunk(ctx, input.content)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, domain.ErrEmptyDocument
	}

	doc := domain.Document{
		Content:     input.content,
		FilePath:    input.filePath,
		ChunkIDs:    []string{},
		EntityIDs:   []string{},
		RelationIDs: []string{},
		TrackID:     trackID,
	}

	entitySet := make(map[string]bool)
	relationSet := make(map[string]bool)

	for _, chunk := range chunks {
		chunkID := domain.ChunkID(docID, chunk.OrderIndex, chunk.Content)
		chunk.DocID = docID
		chunk.FilePath = input.filePath
		state.Chunks[chunkID] = chunk
		doc.ChunkIDs = append(doc.ChunkIDs, chunkID)

		vector, err := s.embedder.Embed(ctx, chunk.Content)
		if err != nil {
			return 0, err
		}
		state.ChunkVectors[chunkID] = vector

		entities, err := s.extractor.ExtractEntities(ctx, chunk.Content)
		if err != nil {
			return 0, err
		}
		relations, err := s.extractor.ExtractRelations(ctx, entities)
		if err != nil {
			return 0, err
		}

		cacheExtraction(state, chunkID, entities, relations)

		for _, candidate := range entities {
			if err := s.mergeEntity(ctx, state, docID, chunkID, candidate); err != nil {
				return 0, err
			}
			entitySet[candidate.ID] = true
		}
		for _, candidate := range relations {
			if err := s.mergeRelation(ctx, state, docID, chunkID, candidate); err != nil {
				return 0, err
			}
			relationSet[candidate.ID] = true
		}
	}

	doc.EntityIDs = sortedSet(entitySet)
	doc.RelationIDs = sortedSet(relationSet)
	state.Docs[docID] = doc

	logger.Debug("indexed %s: %d chunks, %d entities, %d relations",
		docID, len(chunks), len(doc.EntityIDs), len(doc.RelationIDs))
	return len(chunks), nil
}

// mergeEntity upserts one entity mention into the graph.
func (s *PipelineService) mergeEntity(ctx context.Context, state *domain.State, docID, chunkID string, candidate driven.EntityCandidate) error {
	entity, exists := state.Entities[candidate.ID]
	if !exists {
		entity = domain.Entity{
			Name:     candidate.Name,
			Type:     candidate.Type,
			DocIDs:   []string{},
			ChunkIDs: []string{},
		}
	}
	entity.AddMembership(docID, chunkID)
	entity.MergeDescription(candidate.Description)
	state.Entities[candidate.ID] = entity

	vector, err := s.embedder.Embed(ctx, candidate.Name)
	if err != nil {
		return err
	}
	state.EntityVectors[candidate.ID] = domain.MeanVector(state.EntityVectors[candidate.ID], vector)
	return nil
}

// mergeRelation upserts one relation into the graph.
func (s *PipelineService) mergeRelation(ctx context.Context, state *domain.State, docID, chunkID string, candidate driven.RelationCandidate) error {
	relation, exists := state.Relations[candidate.ID]
	if !exists {
		relation = domain.Relation{
			Source:   candidate.Source,
			Target:   candidate.Target,
			DocIDs:   []string{},
			ChunkIDs: []string{},
		}
	}
	relation.AddMembership(docID, chunkID)
	relation.MergeDescription(candidate.Description)
	state.Relations[candidate.ID] = relation

	vector, err := s.embedder.Embed(ctx, candidate.Description)
	if err != nil {
		return err
	}
	state.RelationVectors[candidate.ID] = domain.MeanVector(state.RelationVectors[candidate.ID], vector)
	return nil
}

// cacheExtraction records the chunk's extraction outcome in the
// response cache so a future model-backed extractor can reuse it.
func cacheExtraction(state *domain.State, chunkID string, entities []driven.EntityCandidate, relations []driven.RelationCandidate) {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	descriptions := make([]string, 0, len(relations))
	for _, r := range relations {
		descriptions = append(descriptions, r.Description)
	}
	state.LLMCache["extract:"+chunkID] = map[string]any{
		"entities":  names,
		"relations": descriptions,
	}
}

// startJob flips the status singleton to busy and records the start.
func (s *PipelineService) startJob(ctx context.Context, status *domain.PipelineStatus, jobName string, docs int) error {
	status.Busy = true
	status.JobName = jobName
	status.JobStart = domain.Now()
	status.Docs = docs
	status.Batchs = docs
	status.CurBatch = 0
	status.RequestPending = false
	status.LatestMessage = fmt.Sprintf("Start job '%s' for %d documents", jobName, docs)
	status.AppendHistory(status.LatestMessage)
	return s.store.SavePipelineStatus(ctx, status)
}

// completeJob clears busy and records the completion message.
func (s *PipelineService) completeJob(ctx context.Context, status *domain.PipelineStatus, message string) error {
	status.Busy = false
	status.CurBatch = status.Batchs
	status.LatestMessage = message
	status.AppendHistory(message)
	logger.Info("%s", message)
	return s.store.SavePipelineStatus(ctx, status)
}

// persistAndExport writes the state and rewrites the graph file.
func (s *PipelineService) persistAndExport(ctx context.Context, state *domain.State) error {
	if err := s.store.Persist(ctx, state); err != nil {
		return err
	}
	return s.exporter.Export(ctx, state)
}

// markAutoscanned records that the input directory has been scanned.
func (s *PipelineService) markAutoscanned(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.store.LoadPipelineStatus(ctx)
	if err != nil {
		return err
	}
	if status.Autoscanned {
		return nil
	}
	status.Autoscanned = true
	return s.store.SavePipelineStatus(ctx, status)
}

// ingestResult summarises one indexing job.
func ingestResult(processed, failed, duplicated int, trackID string) *driving.OperationResult {
	result := &driving.OperationResult{TrackID: trackID}

	switch {
	case processed == 0 && failed > 0:
		result.Status = driving.ResultFailure
		result.Message = fmt.Sprintf("Failed to process %d documents.", failed)
	case failed > 0:
		result.Status = driving.ResultPartialSuccess
		result.Message = fmt.Sprintf("Processed %d documents, %d failed.", processed, failed)
	default:
		result.Status = driving.ResultSuccess
		result.Message = fmt.Sprintf("Successfully processed %d documents.", processed)
	}
	if duplicated > 0 {
		result.Message += fmt.Sprintf(" Skipped %d duplicates.", duplicated)
	}
	return result
}

// sortedSet converts an ID set to a sorted slice.
func sortedSet(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// copyFile copies src to dst with restricted permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}
