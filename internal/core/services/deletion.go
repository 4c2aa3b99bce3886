package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docgraph-cli/internal/logger"
)

// DeleteDocuments cascade-removes documents and everything derived from
// them. Entities and relations shared with surviving documents lose the
// deleted memberships; exclusive ones are removed with their vectors.
func (s *PipelineService) DeleteDocuments(ctx context.Context, ids []string) (*driving.DeletionResult, error) {
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

	var present, notFound []string
	for _, id := range ids {
		_, hasDoc := state.Docs[id]
		_, hasStatus := state.DocStatus[id]
		if hasDoc || hasStatus {
			present = append(present, id)
		} else {
			notFound = append(notFound, id)
		}
	}

	if len(present) == 0 {
		return &driving.DeletionResult{
			Status:   driving.ResultNotFound,
			Message:  "No matching documents found.",
			DocIDs:   ids,
			Deleted:  []string{},
			NotFound: notFound,
		}, nil
	}

	if err := s.startJob(ctx, status, "Deleting documents", len(present)); err != nil {
		return nil, err
	}

	deleted := make([]string, 0, len(present))
	for i, docID := range present {
		status.CurBatch = i + 1
		status.LatestMessage = "Deleting " + docID
		status.AppendHistory(status.LatestMessage)
		if err := s.store.SavePipelineStatus(ctx, status); err != nil {
			return nil, err
		}

		deleteDocument(state, docID)
		deleted = append(deleted, docID)
	}

	completion := fmt.Sprintf("Deletion finished. deleted=%d, not_found=%d", len(deleted), len(notFound))
	if err := s.completeJob(ctx, status, completion); err != nil {
		return nil, err
	}

	if err := s.persistAndExport(ctx, state); err != nil {
		return nil, err
	}

	return &driving.DeletionResult{
		Status:   driving.ResultDeletionDone,
		Message:  completion,
		DocIDs:   ids,
		Deleted:  deleted,
		NotFound: notFound,
	}, nil
}

// ClearDocuments resets the store to empty and deletes all input files.
func (s *PipelineService) ClearDocuments(ctx context.Context) (*driving.OperationResult, error) {
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

	if err := s.startJob(ctx, status, "Clearing all documents", len(state.Docs)); err != nil {
		return nil, err
	}

	removed, err := s.scanner.RemoveAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.persistAndExport(ctx, domain.NewState()); err != nil {
		return nil, err
	}

	completion := fmt.Sprintf("All documents cleared. %d input files removed.", removed)
	if err := s.completeJob(ctx, status, completion); err != nil {
		return nil, err
	}

	return &driving.OperationResult{
		Status:  driving.ResultSuccess,
		Message: completion,
	}, nil
}

// ClearCache empties the extraction response cache, leaving every other
// mapping untouched.
func (s *PipelineService) ClearCache(ctx context.Context) (*driving.OperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	cleared := len(state.LLMCache)
	state.LLMCache = make(map[string]any)

	if err := s.store.Persist(ctx, state); err != nil {
		return nil, err
	}

	return &driving.OperationResult{
		Status:  driving.ResultSuccess,
		Message: fmt.Sprintf("Cache cleared. %d entries removed.", cleared),
	}, nil
}

// DeleteEntity removes an entity by name, cascading to every relation
// that touches it and scrubbing document membership lists.
func (s *PipelineService) DeleteEntity(ctx context.Context, name string) (*driving.GraphDeletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	entityID := resolveEntityID(name)
	if _, exists := state.Entities[entityID]; !exists {
		return &driving.GraphDeletionResult{
			Status:     driving.ResultNotFound,
			Message:    fmt.Sprintf("Entity '%s' not found.", name),
			StatusCode: 404,
		}, nil
	}

	delete(state.Entities, entityID)
	delete(state.EntityVectors, entityID)

	removedRelations := 0
	for relationID, relation := range state.Relations {
		if relation.Source == entityID || relation.Target == entityID {
			delete(state.Relations, relationID)
			delete(state.RelationVectors, relationID)
			scrubDocRelations(state, relationID)
			removedRelations++
		}
	}
	scrubDocEntities(state, entityID)

	if err := s.persistAndExport(ctx, state); err != nil {
		return nil, err
	}

	logger.Debug("deleted entity %s and %d relations", entityID, removedRelations)
	return &driving.GraphDeletionResult{
		Status:     driving.ResultSuccess,
		Message:    fmt.Sprintf("Entity '%s' deleted with %d relations.", name, removedRelations),
		StatusCode: 200,
	}, nil
}

// DeleteRelation removes the relation between two entities, given by
// name or entity ID.
func (s *PipelineService) DeleteRelation(ctx context.Context, source, target string) (*driving.GraphDeletionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	sourceID := resolveEntityID(source)
	targetID := resolveEntityID(target)

	found := false
	for relationID, relation := range state.Relations {
		if relation.Source != sourceID || relation.Target != targetID {
			continue
		}
		delete(state.Relations, relationID)
		delete(state.RelationVectors, relationID)
		scrubDocRelations(state, relationID)
		found = true
	}

	if !found {
		return &driving.GraphDeletionResult{
			Status:     driving.ResultNotFound,
			Message:    fmt.Sprintf("No relation from '%s' to '%s'.", source, target),
			StatusCode: 404,
		}, nil
	}

	if err := s.persistAndExport(ctx, state); err != nil {
		return nil, err
	}

	return &driving.GraphDeletionResult{
		Status:     driving.ResultSuccess,
		Message:    fmt.Sprintf("Relation from '%s' to '%s' deleted.", source, target),
		StatusCode: 200,
	}, nil
}

// deleteDocument removes one document and cascades through chunks,
// vectors, cache entries and graph memberships.
func deleteDocument(state *domain.State, docID string) {
	doc, hasDoc := state.Docs[docID]

	if hasDoc {
		chunkSet := make(map[string]bool, len(doc.ChunkIDs))
		for _, chunkID := range doc.ChunkIDs {
			chunkSet[chunkID] = true
			delete(state.Chunks, chunkID)
			delete(state.ChunkVectors, chunkID)
			delete(state.LLMCache, "extract:"+chunkID)
		}

		for _, entityID := range doc.EntityIDs {
			entity, ok := state.Entities[entityID]
			if !ok {
				continue
			}
			entity.DocIDs = removeString(entity.DocIDs, docID)
			entity.ChunkIDs = removeMembers(entity.ChunkIDs, chunkSet)
			if len(entity.DocIDs) == 0 {
				delete(state.Entities, entityID)
				delete(state.EntityVectors, entityID)
			} else {
				state.Entities[entityID] = entity
			}
		}

		for _, relationID := range doc.RelationIDs {
			relation, ok := state.Relations[relationID]
			if !ok {
				continue
			}
			relation.DocIDs = removeString(relation.DocIDs, docID)
			relation.ChunkIDs = removeMembers(relation.ChunkIDs, chunkSet)
			if len(relation.DocIDs) == 0 {
				delete(state.Relations, relationID)
				delete(state.RelationVectors, relationID)
			} else {
				state.Relations[relationID] = relation
			}
		}
	}

	delete(state.Docs, docID)
	delete(state.DocStatus, docID)
}

// scrubDocEntities removes entityID from every document's entity list.
func scrubDocEntities(state *domain.State, entityID string) {
	for docID, doc := range state.Docs {
		doc.EntityIDs = removeString(doc.EntityIDs, entityID)
		state.Docs[docID] = doc
	}
}

// scrubDocRelations removes relationID from every document's relation list.
func scrubDocRelations(state *domain.State, relationID string) {
	for docID, doc := range state.Docs {
		doc.RelationIDs = removeString(doc.RelationIDs, relationID)
		state.Docs[docID] = doc
	}
}

// resolveEntityID accepts either an entity name or an entity ID.
func resolveEntityID(nameOrID string) string {
	if strings.HasPrefix(nameOrID, domain.EntityPrefix) {
		return nameOrID
	}
	return domain.EntityID(nameOrID)
}

// removeString returns s without any occurrence of v.
func removeString(s []string, v string) []string {
	result := s[:0]
	for _, existing := range s {
		if existing != v {
			result = append(result, existing)
		}
	}
	return result
}

// removeMembers returns s without any member of the set.
func removeMembers(s []string, set map[string]bool) []string {
	result := s[:0]
	for _, existing := range s {
		if !set[existing] {
			result = append(result, existing)
		}
	}
	return result
}
