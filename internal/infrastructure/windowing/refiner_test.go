package windowing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/okulikov/docrag/internal/core/domain"
)

// twelveSentences builds a chunk where only sentence index 6 shares
// vocabulary with the query "pressure valve calibration".
func twelveSentences() string {
	sentences := make([]string, 12)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Filler sentence number %d about nothing relevant.", i)
	}
	sentences[6] = "The pressure valve calibration procedure follows."
	return strings.Join(sentences, " ")
}

func TestRefineCentersWindowOnRelevantSentence(t *testing.T) {
	r := NewRefiner(2, 10, 1000, nil)
	chunks := []domain.Chunk{{
		TextUnit: domain.TextUnit{Content: twelveSentences(), Source: "m.pdf", Department: "technical"},
		ChunkID:  0,
	}}

	out := r.Refine(chunks, "pressure valve calibration")
	if len(out) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(out))
	}
	got := out[0]

	if !strings.Contains(got.Content, "pressure valve calibration") {
		t.Fatalf("window must contain the central sentence: %q", got.Content)
	}
	if strings.Contains(got.Content, "number 3") || strings.Contains(got.Content, "number 9") {
		t.Fatalf("window wider than two sentences per side: %q", got.Content)
	}
	for _, n := range []int{4, 5, 7, 8} {
		if !strings.Contains(got.Content, fmt.Sprintf("number %d", n)) {
			t.Fatalf("sentence %d missing from window: %q", n, got.Content)
		}
	}

	if got.Extra["window_type"] != WindowTypeContext {
		t.Fatalf("window_type = %v", got.Extra["window_type"])
	}
	if got.Extra["window_start"] != 4 || got.Extra["window_end"] != 9 {
		t.Fatalf("window bounds = [%v, %v), want [4, 9)", got.Extra["window_start"], got.Extra["window_end"])
	}
	central, _ := got.Extra["central_sentence"].(string)
	if !strings.Contains(central, "pressure valve calibration") {
		t.Fatalf("central_sentence = %q", central)
	}
	if rel, _ := got.Extra["sentence_relevance"].(float64); rel <= 0 {
		t.Fatalf("sentence_relevance must be positive, got %v", rel)
	}
}

func TestRefineClampsWindowAtChunkStart(t *testing.T) {
	sentences := make([]string, 8)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Padding sentence %d here.", i)
	}
	sentences[0] = "Target keyword anchor sentence."
	content := strings.Join(sentences, " ")

	r := NewRefiner(2, 10, 1000, nil)
	out := r.Refine([]domain.Chunk{{TextUnit: domain.TextUnit{Content: content}}}, "target keyword anchor")
	got := out[0]

	if got.Extra["window_start"] != 0 || got.Extra["window_end"] != 3 {
		t.Fatalf("window bounds = [%v, %v), want [0, 3)", got.Extra["window_start"], got.Extra["window_end"])
	}
}

func TestRefineIsIdempotentForIdenticalInput(t *testing.T) {
	r := NewRefiner(2, 10, 1000, nil)
	chunks := []domain.Chunk{{TextUnit: domain.TextUnit{Content: twelveSentences()}}}

	first := r.Refine(chunks, "pressure valve calibration")
	second := r.Refine(chunks, "pressure valve calibration")
	if first[0].Content != second[0].Content {
		t.Fatalf("refinement must be deterministic:\nfirst:  %q\nsecond: %q", first[0].Content, second[0].Content)
	}
}

func TestRefineShortChunkPassesThrough(t *testing.T) {
	r := NewRefiner(2, 10, 1000, nil)
	content := "One sentence. Two sentence. Three sentence."
	out := r.Refine([]domain.Chunk{{TextUnit: domain.TextUnit{Content: content}}}, "anything")

	if out[0].Content != content {
		t.Fatalf("short chunk must pass through unchanged, got %q", out[0].Content)
	}
	if out[0].Extra != nil {
		t.Fatalf("pass-through must not add annotations: %v", out[0].Extra)
	}
}

func TestRefineLongLowStructureChunkKeepsPrefix(t *testing.T) {
	// Four sentences total (fewer than 2*2+1) but far over the prefix
	// threshold, so the bounded prefix kicks in.
	long := strings.Repeat("word ", 300)
	content := "Lead sentence one. Lead sentence two. Lead sentence three. " + long

	r := NewRefiner(2, 3, 1000, nil)
	out := r.Refine([]domain.Chunk{{TextUnit: domain.TextUnit{Content: content}}}, "anything")
	got := out[0]

	if got.Extra["window_type"] != WindowTypePrefix {
		t.Fatalf("window_type = %v, want prefix", got.Extra["window_type"])
	}
	if got.Content != "Lead sentence one. Lead sentence two. Lead sentence three." {
		t.Fatalf("prefix must keep the first three sentences, got %q", got.Content)
	}
}

func TestRefineErrorChunkPassesThrough(t *testing.T) {
	r := NewRefiner(2, 10, 1000, nil)
	chunk := domain.Chunk{
		TextUnit: domain.TextUnit{Content: "[Error loading PDF content: bad]", Error: true},
		ChunkID:  -1,
	}
	out := r.Refine([]domain.Chunk{chunk}, "query")
	if out[0].Content != chunk.Content || !out[0].Error || out[0].Extra != nil {
		t.Fatalf("error chunk must pass through untouched: %+v", out[0])
	}
}

func TestRefinePreservesOrderAndLength(t *testing.T) {
	r := NewRefiner(2, 10, 1000, nil)
	chunks := []domain.Chunk{
		{TextUnit: domain.TextUnit{Content: twelveSentences()}, ChunkID: 0},
		{TextUnit: domain.TextUnit{Content: "short one"}, ChunkID: 1},
		{TextUnit: domain.TextUnit{Content: "[Error loading TXT content: x]", Error: true}, ChunkID: -1},
	}
	out := r.Refine(chunks, "pressure valve calibration")
	if len(out) != len(chunks) {
		t.Fatalf("length changed: %d -> %d", len(chunks), len(out))
	}
	for i := range out {
		if out[i].ChunkID != chunks[i].ChunkID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestOverlapScoreNormalizesByLargerSet(t *testing.T) {
	query := wordSet("alpha beta")
	sentence := wordSet("alpha beta gamma delta")
	if got := overlapScore(query, sentence); got != 0.5 {
		t.Fatalf("overlapScore = %v, want 0.5 (2 common / 4 in larger set)", got)
	}
	if got := overlapScore(query, map[string]struct{}{}); got != 0 {
		t.Fatalf("empty set must score 0, got %v", got)
	}
}

func TestSplitSentencesKeepsTerminatorsAndTail(t *testing.T) {
	got := splitSentences("First one. Second two!  Third three? trailing tail")
	want := []string{"First one.", "Second two!", "Third three?", "trailing tail"}
	if len(got) != len(want) {
		t.Fatalf("sentences = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentencesDecimalNumbersStayIntact(t *testing.T) {
	got := splitSentences("Tolerance is 3.5 millimeters. Next sentence.")
	if len(got) != 2 {
		t.Fatalf("decimal point must not split a sentence: %q", got)
	}
	if got[0] != "Tolerance is 3.5 millimeters." {
		t.Fatalf("sentence 0 = %q", got[0])
	}
}
