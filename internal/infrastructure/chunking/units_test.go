package chunking

import (
	"strings"
	"testing"

	"github.com/okulikov/docrag/internal/core/domain"
)

func TestSplitUnitsAssignsGlobalChunkIDs(t *testing.T) {
	long := strings.Repeat("First file sentence. ", 20)
	units := []domain.TextUnit{
		{Content: long, Source: "a.pdf", FilePath: "data/a.pdf", FileType: "pdf", Department: "technical", PageNumber: 1},
		{Content: "tail page", Source: "a.pdf", FilePath: "data/a.pdf", FileType: "pdf", Department: "technical", PageNumber: 2},
	}

	s := NewSplitter(120, 30)
	chunks := s.SplitUnits(units)
	if len(chunks) < 3 {
		t.Fatalf("expected the long page to produce several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.ChunkID != i {
			t.Fatalf("chunk %d has ChunkID %d, want sequential ids across files", i, c.ChunkID)
		}
	}

	last := chunks[len(chunks)-1]
	if last.Content != "tail page" || last.PageNumber != 2 {
		t.Fatalf("second unit metadata lost: %+v", last)
	}
}

func TestSplitUnitsPreservesUnitMetadata(t *testing.T) {
	units := []domain.TextUnit{
		{Content: "short body", Source: "n.txt", FilePath: "data/safety/n.txt", FileType: "txt", Department: "safety"},
	}

	chunks := NewSplitter(500, 100).SplitUnits(units)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Source != "n.txt" || c.Department != "safety" || c.FileType != "txt" || c.FilePath != "data/safety/n.txt" {
		t.Fatalf("metadata not propagated: %+v", c)
	}
}

func TestSplitUnitsErrorUnitsPassThroughUnsplit(t *testing.T) {
	units := []domain.TextUnit{
		{Content: "good content", Source: "ok.txt", Department: "general"},
		{Content: "[Error loading PDF content: bad xref]", Source: "bad.pdf", Department: "general", PageNumber: 1, Error: true},
	}

	chunks := NewSplitter(500, 100).SplitUnits(units)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	errChunk := chunks[len(chunks)-1]
	if !errChunk.Error {
		t.Fatalf("error unit must keep its flag")
	}
	if errChunk.Content != "[Error loading PDF content: bad xref]" {
		t.Fatalf("error unit content must pass through verbatim, got %q", errChunk.Content)
	}
	if errChunk.ChunkID != -1 {
		t.Fatalf("error units bypass splitting and carry ChunkID -1, got %d", errChunk.ChunkID)
	}
	if chunks[0].ChunkID != 0 {
		t.Fatalf("real chunks still start at id 0, got %d", chunks[0].ChunkID)
	}
}

func TestSplitUnitsBackfillsMissingMetadata(t *testing.T) {
	units := []domain.TextUnit{
		{Content: "lead unit", Source: "lead.txt", Department: "technical"},
		{Content: "orphan unit"},
	}

	chunks := NewSplitter(500, 100).SplitUnits(units)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	orphan := chunks[1]
	if orphan.Source != "lead.txt" || orphan.Department != "technical" {
		t.Fatalf("orphan metadata not backfilled from first unit: %+v", orphan)
	}
}

func TestSplitUnitsBackfillDefaultsWhenFirstUnitIsBare(t *testing.T) {
	units := []domain.TextUnit{
		{Content: "no metadata at all"},
	}

	chunks := NewSplitter(500, 100).SplitUnits(units)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Source != "unknown" || chunks[0].Department != domain.DepartmentGeneral {
		t.Fatalf("bare input must default to unknown/general: %+v", chunks[0])
	}
}

func TestSplitUnitsEmptyInput(t *testing.T) {
	if got := NewSplitter(500, 100).SplitUnits(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
