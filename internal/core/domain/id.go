package domain

import (
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ID prefixes. Identical content always derives the identical ID, which
// is the store's deduplication mechanism.
const (
	DocPrefix      = "doc-"
	ChunkPrefix    = "chunk-"
	EntityPrefix   = "entity-"
	RelationPrefix = "relation-"
	EdgePrefix     = "edge-"
)

// HashID derives a content-addressed identifier: prefix + hex md5 of content.
func HashID(content, prefix string) string {
	sum := md5.Sum([]byte(content)) //nolint:gosec // content addressing, not security
	return prefix + hex.EncodeToString(sum[:])
}

// DocID derives a document ID from its raw text.
func DocID(text string) string {
	return HashID(text, DocPrefix)
}

// ChunkID derives a chunk ID from its parent document, order and content.
func ChunkID(docID string, orderIndex int, content string) string {
	return HashID(fmt.Sprintf("%s:%d:%s", docID, orderIndex, content), ChunkPrefix)
}

// EntityID derives an entity ID from its lower-cased name.
func EntityID(name string) string {
	return HashID(strings.ToLower(name), EntityPrefix)
}

// RelationID derives a relation ID from its lower-cased description.
func RelationID(description string) string {
	return HashID(strings.ToLower(description), RelationPrefix)
}

// EdgeID derives a graph-export edge ID from its endpoints.
func EdgeID(source, target string) string {
	return HashID(source+":"+target, EdgePrefix)
}

// Now returns the current local time in RFC 3339. All persisted
// timestamps use this format so string comparison orders them.
func Now() string {
	return time.Now().Format(time.RFC3339)
}

// SummaryLimit is the default length bound for content summaries.
const SummaryLimit = 160

// Summary collapses whitespace and truncates to limit with an ellipsis.
func Summary(text string, limit int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if len(collapsed) <= limit {
		return collapsed
	}
	return collapsed[:limit-3] + "..."
}
