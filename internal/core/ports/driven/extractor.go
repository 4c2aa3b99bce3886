package driven

import "context"

// EntityCandidate is a candidate entity extracted from chunk text.
type EntityCandidate struct {
	// ID is the content-addressed entity ID.
	ID string

	// Name is the entity name as matched (original casing).
	Name string

	// Type is the entity type; heuristic extractors use "auto".
	Type string

	// Description is the extractor's description for this mention.
	Description string
}

// RelationCandidate is a candidate relation between two extracted entities.
type RelationCandidate struct {
	// ID is the content-addressed relation ID.
	ID string

	// Source and Target are entity IDs.
	Source string
	Target string

	// Description is the extractor's description for this relation.
	Description string
}

// EntityExtractor derives entity and relation candidates from chunk text.
//
// The default implementation is a pattern-match placeholder, not a
// learned model; the interface exists so a real extractor can be
// substituted without touching pipeline logic.
type EntityExtractor interface {
	// ExtractEntities returns candidates in extraction order.
	ExtractEntities(ctx context.Context, chunkText string) ([]EntityCandidate, error)

	// ExtractRelations builds one relation per adjacent candidate pair
	// in extraction order, and nothing for fewer than two entities.
	ExtractRelations(ctx context.Context, entities []EntityCandidate) ([]RelationCandidate, error)
}
