package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okulikov/docrag/internal/core/domain"
	"github.com/okulikov/docrag/internal/core/ports"
)

// ReindexUseCase runs the full ingestion pipeline: walk the corpus, load
// files into text units, split into chunks, embed and index the non-error
// chunks, and record per-file catalog state.
type ReindexUseCase struct {
	corpus    ports.CorpusLoader
	chunker   ports.Chunker
	embedder  ports.Embedder
	index     ports.VectorIndex
	catalog   ports.DocumentCatalog
	inspector ports.DocumentInspector
	logger    *slog.Logger
}

func NewReindexUseCase(
	corpus ports.CorpusLoader,
	chunker ports.Chunker,
	embedder ports.Embedder,
	index ports.VectorIndex,
	catalog ports.DocumentCatalog,
	inspector ports.DocumentInspector,
	logger *slog.Logger,
) *ReindexUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReindexUseCase{
		corpus:    corpus,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		catalog:   catalog,
		inspector: inspector,
		logger:    logger,
	}
}

func (uc *ReindexUseCase) ReindexAll(ctx context.Context) (domain.ReindexStats, error) {
	units, err := uc.corpus.LoadAll(ctx)
	if err != nil {
		return domain.ReindexStats{}, fmt.Errorf("walk corpus: %w", err)
	}
	return uc.reindexUnits(ctx, units)
}

// ReindexDepartment runs the same pipeline over one department folder.
// Records for files outside that department are left untouched.
func (uc *ReindexUseCase) ReindexDepartment(ctx context.Context, department string) (domain.ReindexStats, error) {
	units, err := uc.corpus.LoadDepartment(ctx, department)
	if err != nil {
		return domain.ReindexStats{}, fmt.Errorf("walk department %s: %w", department, err)
	}
	return uc.reindexUnits(ctx, units)
}

func (uc *ReindexUseCase) reindexUnits(ctx context.Context, units []domain.TextUnit) (domain.ReindexStats, error) {
	started := time.Now()

	chunks := uc.chunker.SplitUnits(units)

	valid := make([]domain.Chunk, 0, len(chunks))
	errorUnits := 0
	for _, chunk := range chunks {
		if chunk.Error {
			errorUnits++
			uc.logger.Warn("degraded unit excluded from index",
				"source", chunk.Source, "filetype", chunk.FileType, "content", chunk.Content)
			continue
		}
		valid = append(valid, chunk)
	}

	if len(valid) > 0 {
		texts := make([]string, len(valid))
		for i, chunk := range valid {
			texts[i] = chunk.Content
		}
		vectors, err := uc.embedder.Embed(ctx, texts)
		if err != nil {
			return domain.ReindexStats{}, fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(valid) {
			return domain.ReindexStats{}, domain.WrapError(domain.ErrInvalidInput, "embed chunks",
				fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(valid)))
		}
		if err := uc.index.IndexChunks(ctx, valid, vectors); err != nil {
			return domain.ReindexStats{}, fmt.Errorf("index chunks: %w", err)
		}
	}

	files := uc.recordCatalog(ctx, units, valid)

	stats := domain.ReindexStats{
		Files:      files,
		Units:      len(units),
		Chunks:     len(valid),
		ErrorUnits: errorUnits,
		Duration:   time.Since(started),
	}
	uc.logger.Info("corpus reindex complete",
		"files", stats.Files,
		"units", stats.Units,
		"chunks", stats.Chunks,
		"error_units", stats.ErrorUnits,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return stats, nil
}

// recordCatalog upserts one record per source file in discovery order.
// Catalog failures are logged, not fatal: the vector index is already
// updated and the catalog is descriptive state.
func (uc *ReindexUseCase) recordCatalog(ctx context.Context, units []domain.TextUnit, chunks []domain.Chunk) int {
	type fileAgg struct {
		pages    int
		chunks   int
		degraded bool
	}

	var order []string
	byPath := make(map[string]*fileAgg)
	for _, unit := range units {
		if unit.FilePath == "" {
			continue
		}
		agg, ok := byPath[unit.FilePath]
		if !ok {
			agg = &fileAgg{}
			byPath[unit.FilePath] = agg
			order = append(order, unit.FilePath)
		}
		agg.pages++
		if unit.Error {
			agg.degraded = true
		}
	}
	for _, chunk := range chunks {
		if agg, ok := byPath[chunk.FilePath]; ok {
			agg.chunks++
		}
	}

	now := time.Now().UTC()
	for _, path := range order {
		info, ok := uc.inspector.Info(path)
		if !ok {
			continue
		}
		agg := byPath[path]
		status := domain.StatusIndexed
		if agg.degraded {
			status = domain.StatusError
		}
		rec := domain.DocumentRecord{
			DocumentInfo: info,
			PageCount:    agg.pages,
			ChunkCount:   agg.chunks,
			Status:       status,
			AddedAt:      now,
			UpdatedAt:    now,
		}
		if err := uc.catalog.UpsertDocument(ctx, rec); err != nil {
			uc.logger.Warn("catalog upsert failed", "path", path, "error", err)
		}
	}
	return len(order)
}
