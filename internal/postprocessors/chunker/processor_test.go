package chunker

import (
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.maxTokens != DefaultMaxTokens {
			t.Errorf("expected maxTokens %d, got %d", DefaultMaxTokens, p.maxTokens)
		}
		if p.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, p.overlap)
		}
	})

	t.Run("custom window", func(t *testing.T) {
		p := New(WithMaxTokens(4), WithOverlap(1))
		if p.maxTokens != 4 {
			t.Errorf("expected maxTokens 4, got %d", p.maxTokens)
		}
		if p.overlap != 1 {
			t.Errorf("expected overlap 1, got %d", p.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithMaxTokens(0), WithOverlap(-1))
		if p.maxTokens != DefaultMaxTokens {
			t.Errorf("expected default maxTokens, got %d", p.maxTokens)
		}
		if p.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Chunk_EmptyText(t *testing.T) {
	p := New()

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		chunks, err := p.Chunk(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", text, len(chunks))
		}
	}
}

func TestProcessor_Chunk_Windowing(t *testing.T) {
	// 10 tokens, maxTokens 4, overlap 1: step 3, ceil(10/3) = 4 chunks.
	p := New(WithMaxTokens(4), WithOverlap(1))
	text := "t0 t1 t2 t3 t4 t5 t6 t7 t8 t9"

	chunks, err := p.Chunk(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	want := []struct {
		content string
		tokens  int
	}{
		{"t0 t1 t2 t3", 4},
		{"t3 t4 t5 t6", 4},
		{"t6 t7 t8 t9", 4},
		{"t9", 1},
	}

	for i, w := range want {
		if chunks[i].Content != w.content {
			t.Errorf("chunk %d: expected content %q, got %q", i, w.content, chunks[i].Content)
		}
		if chunks[i].Tokens != w.tokens {
			t.Errorf("chunk %d: expected %d tokens, got %d", i, w.tokens, chunks[i].Tokens)
		}
		if chunks[i].OrderIndex != i {
			t.Errorf("chunk %d: expected order index %d, got %d", i, i, chunks[i].OrderIndex)
		}
	}
}

func TestProcessor_Chunk_SingleWindow(t *testing.T) {
	p := New(WithMaxTokens(100), WithOverlap(10))

	chunks, err := p.Chunk(context.Background(), "just a few tokens here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "just a few tokens here" {
		t.Errorf("unexpected content %q", chunks[0].Content)
	}
	if chunks[0].Tokens != 5 {
		t.Errorf("expected 5 tokens, got %d", chunks[0].Tokens)
	}
}

func TestProcessor_Chunk_OverlapAtLeastOneStep(t *testing.T) {
	// Overlap >= maxTokens degrades to step 1 rather than looping forever.
	p := New(WithMaxTokens(2), WithOverlap(5))

	chunks, err := p.Chunk(context.Background(), strings.Repeat("x ", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 5 {
		t.Errorf("expected 5 chunks with step 1, got %d", len(chunks))
	}
}

func TestProcessor_Chunk_CollapsesWhitespace(t *testing.T) {
	p := New(WithMaxTokens(10), WithOverlap(0))

	chunks, err := p.Chunk(context.Background(), "a\t\tb\n\nc   d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "a b c d" {
		t.Errorf("expected whitespace-joined tokens, got %q", chunks[0].Content)
	}
}
