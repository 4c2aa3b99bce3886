package office

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
)

func writeArchive(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for member, content := range parts {
		entry, err := w.Create(member)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractor_SupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".docx", ".pptx", ".xlsx"}, New().SupportedExtensions())
}

func TestExtractor_ExtractDocx(t *testing.T) {
	path := writeArchive(t, "report.docx", map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
			<document><body>
				<p><r><t>First paragraph.</t></r></p>
				<p><r><t>Second</t></r><r><t> paragraph.</t></r></p>
			</body></document>`,
		"docProps/core.xml": `<coreProperties><title>ignored</title></coreProperties>`,
	})

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtractor_ExtractPptx(t *testing.T) {
	path := writeArchive(t, "deck.pptx", map[string]string{
		"ppt/slides/slide1.xml": `<sld><p><r><t>Slide one</t></r></p></sld>`,
		"ppt/slides/slide2.xml": `<sld><p><r><t>Slide two</t></r></p></sld>`,
		"ppt/notes/note1.xml":   `<note><t>speaker notes</t></note>`,
	})

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Slide one")
	assert.Contains(t, text, "Slide two")
	assert.NotContains(t, text, "speaker notes")
}

func TestExtractor_ExtractXlsx(t *testing.T) {
	path := writeArchive(t, "sheet.xlsx", map[string]string{
		"xl/sharedStrings.xml": `<sst><si><t>Revenue</t></si><si><t>Costs</t></si></sst>`,
	})

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Revenue")
	assert.Contains(t, text, "Costs")
}

func TestExtractor_ExtractInvalidArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

	_, err := New().Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
