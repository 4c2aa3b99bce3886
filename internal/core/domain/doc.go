// Package domain defines the core business entities for docgraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an ingested document with its chunk/entity/relation links
//   - DocumentStatus: per-document processing lifecycle record
//   - Chunk: an overlapping token window within a document
//   - Entity / Relation: shared knowledge-graph records merged across documents
//   - PipelineStatus: singleton record for the running or last batch job
//   - State: the full persisted store snapshot
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
