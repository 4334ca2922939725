package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okulikov/docrag/internal/core/domain"
	"github.com/okulikov/docrag/internal/core/ports"
)

// QueryUseCase answers a validated query: embed, retrieve candidate
// chunks, re-window each around its most query-relevant sentence, then
// generate from the refined context.
type QueryUseCase struct {
	embedder  ports.Embedder
	index     ports.VectorIndex
	refiner   ports.ContextRefiner
	generator ports.AnswerGenerator
	logger    *slog.Logger
}

func NewQueryUseCase(
	embedder ports.Embedder,
	index ports.VectorIndex,
	refiner ports.ContextRefiner,
	generator ports.AnswerGenerator,
	logger *slog.Logger,
) *QueryUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryUseCase{
		embedder:  embedder,
		index:     index,
		refiner:   refiner,
		generator: generator,
		logger:    logger,
	}
}

func (uc *QueryUseCase) Answer(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	retrievalStart := time.Now()
	queryVector, err := uc.embedder.EmbedQuery(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	retrieved, err := uc.index.Search(ctx, queryVector, req.Limit(), domain.SearchFilter{
		Department: req.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("search vector index: %w", err)
	}
	retrievalTime := time.Since(retrievalStart).Seconds()

	chunks := make([]domain.Chunk, len(retrieved))
	for i := range retrieved {
		chunks[i] = retrieved[i].Chunk
	}
	refined := uc.refiner.Refine(chunks, req.Query)
	// Refine preserves order and length, so retrieval scores still line up.
	for i := range refined {
		retrieved[i].Chunk = refined[i]
	}

	generationStart := time.Now()
	answer, err := uc.generator.GenerateAnswer(ctx, req.Query, req.Language, retrieved)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	generationTime := time.Since(generationStart).Seconds()

	uc.logger.Debug("query answered",
		"department", req.Department,
		"chunks", len(retrieved),
		"retrieval_s", retrievalTime,
		"generation_s", generationTime,
	)

	resp := &domain.QueryResponse{
		Response:       answer,
		Sources:        make([]domain.DocumentSource, 0, len(retrieved)),
		ConversationID: req.ConversationID,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Language:       req.Language,
		Metrics: &domain.ResponseMetrics{
			RetrievalTime:    retrievalTime,
			GenerationTime:   generationTime,
			ContextRelevance: meanScore(retrieved),
		},
	}
	for _, rc := range retrieved {
		source := domain.DocumentSource{
			Content:   rc.Content,
			Relevance: rc.Score,
		}
		if req.WithMetadata() {
			source.Source = rc.Source
			source.Department = rc.Department
			source.Page = rc.PageNumber
		}
		resp.Sources = append(resp.Sources, source)
	}
	return resp, nil
}

func meanScore(chunks []domain.RetrievedChunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range chunks {
		total += c.Score
	}
	return total / float64(len(chunks))
}
