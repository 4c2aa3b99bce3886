package domain

// State is the full persisted store snapshot: every mapping the pipeline
// reads or writes. Each top-level operation loads the whole state,
// mutates it in memory, and persists it back in one step.
type State struct {
	// Docs maps document ID to document.
	Docs map[string]Document `json:"docs"`

	// DocStatus maps document ID to its lifecycle record.
	DocStatus map[string]DocumentStatus `json:"doc_status"`

	// Chunks maps chunk ID to chunk.
	Chunks map[string]Chunk `json:"chunks"`

	// Entities maps entity ID to entity.
	Entities map[string]Entity `json:"entities"`

	// Relations maps relation ID to relation.
	Relations map[string]Relation `json:"relations"`

	// ChunkVectors, EntityVectors and RelationVectors are the parallel
	// embedding tables keyed by the owning record's ID.
	ChunkVectors    map[string][]float64 `json:"chunk_vectors"`
	EntityVectors   map[string][]float64 `json:"entity_vectors"`
	RelationVectors map[string][]float64 `json:"relation_vectors"`

	// LLMCache caches extraction responses keyed by request hash.
	LLMCache map[string]any `json:"llm_cache"`
}

// NewState returns an empty state with all mappings initialised.
func NewState() *State {
	return &State{
		Docs:            make(map[string]Document),
		DocStatus:       make(map[string]DocumentStatus),
		Chunks:          make(map[string]Chunk),
		Entities:        make(map[string]Entity),
		Relations:       make(map[string]Relation),
		ChunkVectors:    make(map[string][]float64),
		EntityVectors:   make(map[string][]float64),
		RelationVectors: make(map[string][]float64),
		LLMCache:        make(map[string]any),
	}
}

// StatusCounts tallies document statuses across the whole state.
func (s *State) StatusCounts() map[string]int {
	counts := make(map[string]int)
	for _, status := range s.DocStatus {
		counts[string(status.Status)]++
	}
	return counts
}

// ProcessedFilePaths returns the set of file paths already recorded in
// doc-status, used by the scanner to skip known files.
func (s *State) ProcessedFilePaths() map[string]bool {
	paths := make(map[string]bool)
	for _, status := range s.DocStatus {
		if status.FilePath != "" {
			paths[status.FilePath] = true
		}
	}
	return paths
}
