package chunking

import (
	"github.com/okulikov/docrag/internal/core/domain"
)

// SplitUnits splits the non-error subset of units into chunks and assigns
// chunk_id as the 0-based index across the whole output sequence, not per
// source file. Error-flagged units bypass splitting and are re-appended
// verbatim (ChunkID -1) so downstream diagnostics still see them.
func (s *Splitter) SplitUnits(units []domain.TextUnit) []domain.Chunk {
	if len(units) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	chunkID := 0
	for _, unit := range units {
		if unit.Error {
			continue
		}
		for _, piece := range s.SplitText(unit.Content) {
			chunk := domain.Chunk{TextUnit: unit, ChunkID: chunkID}
			chunk.Content = piece
			backfill(&chunk.TextUnit, units)
			chunks = append(chunks, chunk)
			chunkID++
		}
	}

	for _, unit := range units {
		if unit.Error {
			chunks = append(chunks, domain.Chunk{TextUnit: unit, ChunkID: -1})
		}
	}
	return chunks
}

// backfill repairs missing source/department from the first element of the
// input sequence. This is best-effort: when the input mixes several files
// without per-unit metadata it silently attributes orphans to the first
// file. Kept for compatibility with the original pipeline.
func backfill(u *domain.TextUnit, input []domain.TextUnit) {
	if u.Source == "" {
		if src := input[0].Source; src != "" {
			u.Source = src
		} else {
			u.Source = "unknown"
		}
	}
	if u.Department == "" {
		if dept := input[0].Department; dept != "" {
			u.Department = dept
		} else {
			u.Department = domain.DepartmentGeneral
		}
	}
}
