// Package chunker provides an overlapping token-window chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/custodia-labs/docgraph-cli/internal/core/domain"
	"github.com/custodia-labs/docgraph-cli/internal/core/ports/driven"
)

// DefaultMaxTokens is the default window size in tokens.
const DefaultMaxTokens = 120

// DefaultOverlap is the default number of overlapping tokens.
const DefaultOverlap = 40

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// Processor splits document text into overlapping token windows.
// Tokenisation is whitespace splitting; there is no NLP involved.
type Processor struct {
	maxTokens int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxTokens sets the window size in tokens.
func WithMaxTokens(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxTokens = n
		}
	}
}

// WithOverlap sets the overlap between windows in tokens.
func WithOverlap(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlap = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxTokens: DefaultMaxTokens,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Chunk splits text into windows of up to maxTokens tokens. Windows
// start at multiples of step = max(1, maxTokens-overlap); the last
// partial window is kept if non-empty. Empty or whitespace-only text
// yields no chunks.
func (p *Processor) Chunk(_ context.Context, text string) ([]domain.Chunk, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := p.maxTokens - p.overlap
	if step < 1 {
		step = 1
	}

	chunks := make([]domain.Chunk, 0, (len(tokens)+step-1)/step)
	for start := 0; start < len(tokens); start += step {
		end := start + p.maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		window := tokens[start:end]

		chunks = append(chunks, domain.Chunk{
			Content:    strings.Join(window, " "),
			Tokens:     len(window),
			OrderIndex: len(chunks),
		})
	}

	return chunks, nil
}
