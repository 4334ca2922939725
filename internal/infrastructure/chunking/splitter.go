// Package chunking splits normalized text units into overlapping
// retrieval-sized chunks. Boundary preference is paragraph, then line,
// then sentence-terminal punctuation, then whitespace, with a hard
// character cut as the last resort.
package chunking

import (
	"strings"
	"unicode/utf8"
)

var defaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

type Splitter struct {
	ChunkSize int
	Overlap   int

	separators []string
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize:  chunkSize,
		Overlap:    overlap,
		separators: defaultSeparators,
	}
}

// SplitText splits one text into chunks of roughly ChunkSize characters
// with roughly Overlap characters shared between consecutive chunks.
func (s *Splitter) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, seps []string) []string {
	sep := ""
	var rest []string
	for i, cand := range seps {
		if cand == "" {
			break
		}
		if strings.Contains(text, cand) {
			sep = cand
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return s.hardCut(text)
	}

	// Separators stay attached to the preceding piece so reassembly in
	// chunk order preserves the original text.
	pieces := strings.SplitAfter(text, sep)

	var final, good []string
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good)...)
			good = nil
		}
		final = append(final, s.split(piece, rest)...)
	}
	if len(good) > 0 {
		final = append(final, s.merge(good)...)
	}
	return final
}

// merge packs boundary pieces into chunks up to ChunkSize, carrying back up
// to Overlap trailing characters into the next chunk.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var cur []string
	curLen := 0

	for _, piece := range pieces {
		pl := utf8.RuneCountInString(piece)
		if curLen+pl > s.ChunkSize && len(cur) > 0 {
			if chunk := strings.TrimSpace(strings.Join(cur, "")); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for curLen > s.Overlap || (curLen+pl > s.ChunkSize && curLen > 0) {
				curLen -= utf8.RuneCountInString(cur[0])
				cur = cur[1:]
			}
		}
		cur = append(cur, piece)
		curLen += pl
	}

	if chunk := strings.TrimSpace(strings.Join(cur, "")); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// hardCut is the no-better-boundary fallback: a sliding rune window of
// ChunkSize advancing by ChunkSize-Overlap.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
