// Package windowing tightens retrieved chunks to the sentence neighborhood
// of the most query-relevant sentence. It runs at query time only and
// never touches the persisted corpus: chunks are re-bounded, not
// discarded, and identical inputs always produce identical output.
package windowing

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/okulikov/docrag/internal/core/domain"
)

const (
	WindowTypeContext = "context"
	WindowTypePrefix  = "prefix"
)

type Refiner struct {
	// WindowSize is the number of sentences kept on each side of the
	// most relevant one.
	WindowSize int
	// PrefixSentences bounds the sentence prefix kept for chunks too
	// short to window but longer than PrefixMinChars.
	PrefixSentences int
	PrefixMinChars  int

	logger *slog.Logger
}

func NewRefiner(windowSize, prefixSentences, prefixMinChars int, logger *slog.Logger) *Refiner {
	if windowSize <= 0 {
		windowSize = 2
	}
	if prefixSentences <= 0 {
		prefixSentences = 10
	}
	if prefixMinChars <= 0 {
		prefixMinChars = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Refiner{
		WindowSize:      windowSize,
		PrefixSentences: prefixSentences,
		PrefixMinChars:  prefixMinChars,
		logger:          logger,
	}
}

// Refine re-centers each chunk's content around its highest-scoring
// sentence. Error-flagged chunks pass through unchanged, as does any chunk
// whose refinement fails: one malformed chunk never aborts the batch.
func (r *Refiner) Refine(chunks []domain.Chunk, query string) []domain.Chunk {
	if len(chunks) == 0 {
		return nil
	}
	queryWords := wordSet(query)
	out := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, r.refineChunk(chunk, queryWords))
	}
	return out
}

func (r *Refiner) refineChunk(chunk domain.Chunk, queryWords map[string]struct{}) (refined domain.Chunk) {
	refined = chunk
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("context window refinement failed",
				"source", chunk.Source, "chunk_id", chunk.ChunkID, "panic", rec)
			refined = chunk
		}
	}()

	if chunk.Error {
		return chunk
	}

	sentences := splitSentences(chunk.Content)
	if len(sentences) < 2*r.WindowSize+1 {
		// Too short to window meaningfully. Long chunks still get a
		// bounded sentence prefix so oversized low-structure content
		// does not dominate the generation context.
		if utf8.RuneCountInString(chunk.Content) > r.PrefixMinChars && len(sentences) > 0 {
			keep := r.PrefixSentences
			if keep > len(sentences) {
				keep = len(sentences)
			}
			refined.Content = strings.Join(sentences[:keep], " ")
			extra := chunk.CloneExtra()
			extra["window_type"] = WindowTypePrefix
			refined.Extra = extra
			return refined
		}
		return chunk
	}

	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		scores[i] = overlapScore(queryWords, wordSet(sentence))
	}

	// Ties break toward the first occurrence.
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}

	start := best - r.WindowSize
	if start < 0 {
		start = 0
	}
	end := best + r.WindowSize + 1
	if end > len(sentences) {
		end = len(sentences)
	}

	refined.Content = strings.Join(sentences[start:end], " ")
	extra := chunk.CloneExtra()
	extra["window_type"] = WindowTypeContext
	extra["window_start"] = start
	extra["window_end"] = end
	extra["central_sentence"] = sentences[best]
	extra["sentence_relevance"] = scores[best]
	refined.Extra = extra
	return refined
}

// overlapScore is the Jaccard-like lexical relevance: word-set
// intersection normalized by the larger of the two set sizes. Empty sets
// score 0.
func overlapScore(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for word := range a {
		if _, ok := b[word]; ok {
			common++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(common) / float64(denom)
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}

// splitSentences splits on '.', '!' or '?' followed by whitespace, keeping
// the terminator with its sentence. Trailing text without a terminator
// counts as a final sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if !isTerminator(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(b.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		b.Reset()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}

	if tail := strings.TrimSpace(b.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
