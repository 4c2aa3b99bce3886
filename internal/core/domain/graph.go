package domain

// Entity is a knowledge-graph node shared across documents.
// The first mention creates the record; later mentions append to the
// membership sets and replace Description only when strictly longer.
type Entity struct {
	// Name is the entity name as extracted (original casing).
	Name string `json:"entity_name"`

	// Type is the entity type; extractors without typing use "auto".
	Type string `json:"entity_type"`

	// Description is the richest description seen so far.
	Description string `json:"description"`

	// DocIDs lists the documents mentioning this entity, in first-seen order.
	DocIDs []string `json:"doc_ids"`

	// ChunkIDs lists the chunks mentioning this entity, in first-seen order.
	ChunkIDs []string `json:"chunk_ids"`
}

// Relation is a directed knowledge-graph edge between two entities,
// keyed by a hash of its lower-cased description. Membership and merge
// semantics match Entity.
type Relation struct {
	// Source is the source entity's ID.
	Source string `json:"source"`

	// Target is the target entity's ID.
	Target string `json:"target"`

	// Description is the richest description seen so far.
	Description string `json:"description"`

	// DocIDs lists the documents this relation was derived from.
	DocIDs []string `json:"doc_ids"`

	// ChunkIDs lists the chunks this relation was derived from.
	ChunkIDs []string `json:"chunk_ids"`
}

// AddMembership appends docID and chunkID to the entity's sets if absent.
func (e *Entity) AddMembership(docID, chunkID string) {
	e.DocIDs = appendUnique(e.DocIDs, docID)
	e.ChunkIDs = appendUnique(e.ChunkIDs, chunkID)
}

// MergeDescription replaces the description if the candidate is strictly longer.
func (e *Entity) MergeDescription(candidate string) {
	if len(candidate) > len(e.Description) {
		e.Description = candidate
	}
}

// AddMembership appends docID and chunkID to the relation's sets if absent.
func (r *Relation) AddMembership(docID, chunkID string) {
	r.DocIDs = appendUnique(r.DocIDs, docID)
	r.ChunkIDs = appendUnique(r.ChunkIDs, chunkID)
}

// MergeDescription replaces the description if the candidate is strictly longer.
func (r *Relation) MergeDescription(candidate string) {
	if len(candidate) > len(r.Description) {
		r.Description = candidate
	}
}

// appendUnique appends v to s when not already present, preserving order.
func appendUnique(s []string, v string) []string {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}

// MeanVector combines two embedding vectors by per-component arithmetic mean.
// This is the store's fixed two-term merge policy for repeated mentions;
// it is not a running mean over all observations.
func MeanVector(prev, next []float64) []float64 {
	if len(prev) == 0 {
		return next
	}
	n := len(prev)
	if len(next) < n {
		n = len(next)
	}
	merged := make([]float64, n)
	for i := 0; i < n; i++ {
		merged[i] = (prev[i] + next[i]) / 2.0
	}
	return merged
}
