package analysis

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short lease", 2000, 200)
	if len(chunks) != 1 || chunks[0] != "short lease" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 50) // 500 runes
	chunks := SplitText(text, 200, 50)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks got %d", len(chunks))
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len([]rune(chunk)) != 200 {
			t.Fatalf("chunk %d: expected 200 runes got %d", i, len([]rune(chunk)))
		}
	}

	// consecutive chunks share the overlap region
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	if string(first[150:]) != string(second[:50]) {
		t.Fatalf("expected 50-rune overlap between chunks")
	}
}

func TestSplitTextCoversWholeDocument(t *testing.T) {
	text := strings.Repeat("x", 4500)
	chunks := SplitText(text, 2000, 200)
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Fatalf("last chunk must end the document")
	}
}
