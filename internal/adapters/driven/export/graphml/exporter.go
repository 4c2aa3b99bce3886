// Package graphml serialises the store's graph to a GraphML file.
//
// One node per document, chunk and entity; edges are document→chunk
// ("contains"), chunk→entity ("mentions") and relation source→target
// (labelled by the relation description). The file is rewritten in full
// after every successful mutating operation.
package graphml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// DefaultFileName is the export file name inside the data directory.
const DefaultFileName = "graph_chunk_entity_relation.graphml"

// docLabelLimit bounds document node labels.
const docLabelLimit = 50

// Ensure Exporter implements the interface.
var _ driven.GraphExporter = (*Exporter)(nil)

// Exporter writes the GraphML export file.
type Exporter struct {
	path string
}

// New creates an exporter writing to dataDir/DefaultFileName.
func New(dataDir string) *Exporter {
	return &Exporter{path: filepath.Join(dataDir, DefaultFileName)}
}

// Path returns the export file location.
func (e *Exporter) Path() string {
	return e.path
}

// labelEscaper makes labels safe as GraphML element text. Double quotes
// become single quotes to keep labels readable in graph viewers.
var labelEscaper = strings.NewReplacer(
	`"`, "'",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Export rewrites the graph file from the given state.
func (e *Exporter) Export(_ context.Context, state *domain.State) error {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<graphml xmlns="http://graphml.graphdrawing.org/xmlns" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://graphml.graphdrawing.org/xmlns http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd">` + "\n")
	b.WriteString(`  <key id="d0" for="node" attr.name="label" attr.type="string"/>` + "\n")
	b.WriteString(`  <key id="d1" for="node" attr.name="type" attr.type="string"/>` + "\n")
	b.WriteString(`  <key id="d2" for="edge" attr.name="label" attr.type="string"/>` + "\n")
	b.WriteString(`  <graph id="G" edgedefault="undirected">` + "\n")

	for _, docID := range sortedKeys(state.Docs) {
		doc := state.Docs[docID]
		writeNode(&b, docID, domain.Summary(doc.Content, docLabelLimit), "document")
	}

	for _, chunkID := range sortedKeys(state.Chunks) {
		chunk := state.Chunks[chunkID]
		writeNode(&b, chunkID, fmt.Sprintf("Chunk %d", chunk.OrderIndex), "chunk")
		if chunk.DocID != "" {
			writeEdge(&b, domain.EdgeID(chunk.DocID, chunkID), chunk.DocID, chunkID, "contains")
		}
	}

	for _, entityID := range sortedKeys(state.Entities) {
		entity := state.Entities[entityID]
		writeNode(&b, entityID, entity.Name, "entity")
		for _, chunkID := range entity.ChunkIDs {
			if _, ok := state.Chunks[chunkID]; ok {
				writeEdge(&b, domain.EdgeID(chunkID, entityID), chunkID, entityID, "mentions")
			}
		}
	}

	for _, relationID := range sortedKeys(state.Relations) {
		relation := state.Relations[relationID]
		if relation.Source != "" && relation.Target != "" {
			writeEdge(&b, relationID, relation.Source, relation.Target, relation.Description)
		}
	}

	b.WriteString("  </graph>\n")
	b.WriteString("</graphml>\n")

	if err := os.WriteFile(e.path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("writing graph export: %w", err)
	}
	return nil
}

func writeNode(b *strings.Builder, id, label, nodeType string) {
	fmt.Fprintf(b, `    <node id="%s"><data key="d0">%s</data><data key="d1">%s</data></node>`+"\n",
		id, labelEscaper.Replace(label), nodeType)
}

func writeEdge(b *strings.Builder, id, source, target, label string) {
	fmt.Fprintf(b, `    <edge id="%s" source="%s" target="%s"><data key="d2">%s</data></edge>`+"\n",
		id, source, target, labelEscaper.Replace(label))
}

// sortedKeys returns map keys sorted so the export is deterministic.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
