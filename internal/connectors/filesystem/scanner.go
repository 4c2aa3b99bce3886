// Package filesystem connects the pipeline to the input directory on
// local disk: scanning for new documents, validating uploaded file
// names and watching for files dropped in while the CLI runs.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docgraph-cli/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.InputScanner = (*Scanner)(nil)

// Scanner is the filesystem implementation of driven.InputScanner.
// Support for a file is decided by the extractor registry so the
// scanner and the text extraction stage never disagree.
type Scanner struct {
	dir      string
	registry driven.TextExtractorRegistry
}

// New creates a scanner over dir, creating the directory if needed.
func New(dir string, registry driven.TextExtractorRegistry) (*Scanner, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".docgraph", "inputs")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating input directory: %w", err)
	}

	return &Scanner{dir: dir, registry: registry}, nil
}

// Dir returns the input directory path.
func (s *Scanner) Dir() string {
	return s.dir
}

// IsSupported reports whether the filename's extension is ingestible.
func (s *Scanner) IsSupported(filename string) bool {
	return s.registry.IsSupported(filename)
}

// ScanNewFiles returns supported files whose names are not in the
// processed set, sorted by path.
func (s *Scanner) ScanNewFiles(_ context.Context, processed map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !s.registry.IsSupported(name) {
			logger.Debug("skipping unsupported file: %s", name)
			continue
		}
		if processed[name] {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// SanitizeFilename strips path traversal characters and verifies the
// result still resolves inside the input directory.
func (s *Scanner) SanitizeFilename(filename string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, filename)
	cleaned = strings.ReplaceAll(cleaned, "/", "")
	cleaned = strings.ReplaceAll(cleaned, "\\", "")
	cleaned = strings.ReplaceAll(cleaned, "..", "")
	cleaned = strings.Trim(cleaned, " .")

	if cleaned == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsafeFilename, filename)
	}

	target := filepath.Join(s.dir, cleaned)
	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", fmt.Errorf("resolving input directory: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving target path: %w", err)
	}
	if !strings.HasPrefix(absTarget, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsafeFilename, filename)
	}

	return cleaned, nil
}

// UniqueName appends _001, _002, ... before the extension until the
// name does not collide with an existing file.
func (s *Scanner) UniqueName(filename string) string {
	if _, err := os.Stat(filepath.Join(s.dir, filename)); os.IsNotExist(err) {
		return filename
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%03d%s", stem, i, ext)
		if _, err := os.Stat(filepath.Join(s.dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
	}
}

// RemoveAll deletes every regular file in the input directory and
// returns the number removed.
func (s *Scanner) RemoveAll(_ context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading input directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// Watch emits the path of each supported file created in the input
// directory until ctx is cancelled.
func (s *Scanner) Watch(ctx context.Context) (<-chan string, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	files := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				name := filepath.Base(event.Name)
				if strings.HasPrefix(name, ".") || !s.registry.IsSupported(name) {
					continue
				}
				select {
				case files <- event.Name:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return files, errs, nil
}
