package normalisers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/html"
	"github.com/custodia-labs/docgraph-cli/internal/normalisers/plaintext"
)

func TestRegistry_IsSupported(t *testing.T) {
	registry := NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(html.New())

	assert.True(t, registry.IsSupported("notes.txt"))
	assert.True(t, registry.IsSupported("REPORT.MD"))
	assert.True(t, registry.IsSupported("page.html"))
	assert.False(t, registry.IsSupported("photo.png"))
	assert.False(t, registry.IsSupported("no-extension"))
}

func TestRegistry_ExtractDispatches(t *testing.T) {
	registry := NewRegistry()
	registry.Register(plaintext.New())

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("dispatched"), 0600))

	text, err := registry.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "dispatched", text)
}

func TestRegistry_ExtractUnsupported(t *testing.T) {
	registry := NewRegistry()
	registry.Register(plaintext.New())

	_, err := registry.Extract(context.Background(), "binary.exe")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

type fakeExtractor struct {
	exts []string
	text string
}

func (f *fakeExtractor) SupportedExtensions() []string { return f.exts }

func (f *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	return f.text, nil
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeExtractor{exts: []string{".txt"}, text: "first"})
	registry.Register(&fakeExtractor{exts: []string{".txt"}, text: "second"})

	text, err := registry.Extract(context.Background(), "any.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	var _ driven.TextExtractorRegistry = registry
}
