package html

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	return text
}

func TestExtractor_StripsTags(t *testing.T) {
	text := extract(t, `<html><body><h1>Title</h1><p>Some <b>bold</b> text.</p></body></html>`)

	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Some bold text.")
	assert.NotContains(t, text, "<")
}

func TestExtractor_DropsScriptAndStyle(t *testing.T) {
	text := extract(t, `<html><head><style>body { color: red }</style></head>
		<body><script>alert("hi")</script><p>Visible</p></body></html>`)

	assert.Contains(t, text, "Visible")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color")
}

func TestExtractor_UnescapesEntities(t *testing.T) {
	text := extract(t, `<p>Fish &amp; chips &lt;cheap&gt;</p>`)

	assert.Equal(t, "Fish & chips <cheap>", text)
}

func TestExtractor_SupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".html", ".htm"}, New().SupportedExtensions())
}
