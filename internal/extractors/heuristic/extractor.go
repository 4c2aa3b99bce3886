// Package heuristic provides a pattern-match entity extractor.
//
// It is a deliberate placeholder for a learned model: entities are runs
// of capitalised words, relations pair adjacent entities in extraction
// order. Both rules are part of the extractor's contract and must be
// preserved exactly for compatibility with existing stores.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// entityPattern matches runs of capitalised words of 3+ letters each.
var entityPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z]{2,}(?:\s+[A-Z][a-zA-Z]{2,})*\b`)

// minEntityLength discards matches shorter than this after trimming.
const minEntityLength = 3

// Ensure Extractor implements the interface.
var _ driven.EntityExtractor = (*Extractor)(nil)

// Extractor derives entity and relation candidates from chunk text.
type Extractor struct{}

// New creates a new heuristic extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractEntities returns capitalised-word matches as entity candidates,
// in order of appearance.
func (e *Extractor) ExtractEntities(_ context.Context, chunkText string) ([]driven.EntityCandidate, error) {
	matches := entityPattern.FindAllString(chunkText, -1)

	entities := make([]driven.EntityCandidate, 0, len(matches))
	for _, match := range matches {
		name := strings.TrimSpace(match)
		if len(name) < minEntityLength {
			continue
		}
		entities = append(entities, driven.EntityCandidate{
			ID:          domain.EntityID(name),
			Name:        name,
			Type:        "auto",
			Description: "Auto extracted entity: " + name,
		})
	}
	return entities, nil
}

// ExtractRelations builds one relation per adjacent entity pair in
// extraction order. Fewer than two entities yield no relations.
func (e *Extractor) ExtractRelations(_ context.Context, entities []driven.EntityCandidate) ([]driven.RelationCandidate, error) {
	if len(entities) < 2 {
		return nil, nil
	}

	relations := make([]driven.RelationCandidate, 0, len(entities)-1)
	for i := 0; i+1 < len(entities); i++ {
		source, target := entities[i], entities[i+1]
		description := source.Name + " related to " + target.Name
		relations = append(relations, driven.RelationCandidate{
			ID:          domain.RelationID(description),
			Source:      source.ID,
			Target:      target.ID,
			Description: description,
		})
	}
	return relations, nil
}
