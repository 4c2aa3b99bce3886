// Package office extracts text from Office Open XML documents (.docx,
// .pptx, .xlsx). The files are ZIP archives; text lives in `t` elements
// inside format-specific XML parts.
package office

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles Office Open XML documents.
type Extractor struct{}

// New creates a new Office extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".docx", ".pptx", ".xlsx"}
}

// Extract opens the archive and pulls text out of the parts holding
// document content for the given format.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not a valid archive", domain.ErrInvalidInput, filepath.Base(path))
	}
	defer reader.Close()

	var parts []string
	for _, file := range reader.File {
		if isContentPart(filepath.Ext(path), file.Name) {
			text, err := extractPartText(file)
			if err != nil {
				return "", err
			}
			if text != "" {
				parts = append(parts, text)
			}
		}
	}

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// isContentPart reports whether the archive member carries document
// text for the given file format.
func isContentPart(ext, name string) bool {
	switch strings.ToLower(ext) {
	case ".docx":
		return name == "word/document.xml"
	case ".pptx":
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	case ".xlsx":
		return name == "xl/sharedStrings.xml"
	}
	return false
}

// extractPartText walks the XML tokens of one part, collecting the
// character data of every `t` element. Paragraph ends become newlines.
func extractPartText(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", file.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var result strings.Builder
	inText := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed XML in %s", domain.ErrInvalidInput, file.Name)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText++
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText--
			case "p":
				result.WriteString("\n")
			}
		case xml.CharData:
			if inText > 0 {
				result.Write(t)
			}
		}
	}

	return strings.TrimSpace(result.String()), nil
}
