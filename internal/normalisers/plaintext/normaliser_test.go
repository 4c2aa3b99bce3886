package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_SupportedExtensions(t *testing.T) {
	exts := New().SupportedExtensions()

	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".go")
	assert.NotContains(t, exts, ".docx")
	assert.NotContains(t, exts, ".pdf")
}

func TestExtractor_Extract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nsecond line"), 0600))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond line", text)
}

func TestExtractor_ExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
