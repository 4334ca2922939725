package ports

import (
	"context"

	"github.com/okulikov/docrag/internal/core/domain"
)

// FileLoader converts one file into provenance-tagged text units. It never
// returns an error: any failure is folded into a single error-flagged unit
// so batch ingestion is never aborted by one bad file. An empty department
// defaults to "general"; folder-based inference belongs to CorpusLoader.
type FileLoader interface {
	Load(ctx context.Context, path, department string) []domain.TextUnit
}

// CorpusLoader discovers supported files under the department-organized
// data root and dispatches each to the loader. The returned error is only
// ever a context cancellation; missing folders and per-file failures
// degrade to fewer units.
type CorpusLoader interface {
	LoadFolder(ctx context.Context, folder, department string) ([]domain.TextUnit, error)
	LoadDepartment(ctx context.Context, department string) ([]domain.TextUnit, error)
	LoadAll(ctx context.Context) ([]domain.TextUnit, error)
}

// DocumentInspector derives descriptive metadata for a single file without
// reading its content. ok is false when the path does not exist.
type DocumentInspector interface {
	Info(path string) (info domain.DocumentInfo, ok bool)
}

// Chunker splits text units into overlapping retrieval-sized chunks.
type Chunker interface {
	SplitUnits(units []domain.TextUnit) []domain.Chunk
}

// ContextRefiner re-centers each chunk's content around its most
// query-relevant sentence. It is a query-time-only transformation: same
// query and chunks yield identical output, and the persisted corpus is
// never touched.
type ContextRefiner interface {
	Refine(chunks []domain.Chunk, query string) []domain.Chunk
}

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex persists chunks with complete metadata and performs
// similarity search over them.
type VectorIndex interface {
	IndexChunks(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int, filter domain.SearchFilter) ([]domain.RetrievedChunk, error)
}

// AnswerGenerator creates the final user-facing answer from refined chunks.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, language string, chunks []domain.RetrievedChunk) (string, error)
}

// DocumentCatalog records per-file ingestion state. An empty department
// lists the whole corpus.
type DocumentCatalog interface {
	UpsertDocument(ctx context.Context, rec domain.DocumentRecord) error
	ListDocuments(ctx context.Context, department string) ([]domain.DocumentRecord, error)
}

// ReindexQueue publishes/consumes corpus reindex requests. The payload
// is the department to reindex; empty means everything.
type ReindexQueue interface {
	PublishReindexRequested(ctx context.Context, department string) error
	SubscribeReindexRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// CorpusReindexer is the inbound contract for the ingestion pipeline,
// either over the whole corpus or scoped to one department folder.
type CorpusReindexer interface {
	ReindexAll(ctx context.Context) (domain.ReindexStats, error)
	ReindexDepartment(ctx context.Context, department string) (domain.ReindexStats, error)
}

// QueryService is the inbound contract for retrieval-augmented answering.
type QueryService interface {
	Answer(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error)
}
