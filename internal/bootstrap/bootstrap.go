package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okulikov/docrag/internal/config"
	"github.com/okulikov/docrag/internal/core/ports"
	"github.com/okulikov/docrag/internal/core/usecase"
	"github.com/okulikov/docrag/internal/infrastructure/chunking"
	"github.com/okulikov/docrag/internal/infrastructure/llm/ollama"
	"github.com/okulikov/docrag/internal/infrastructure/loader"
	"github.com/okulikov/docrag/internal/infrastructure/queue/nats"
	"github.com/okulikov/docrag/internal/infrastructure/repository/postgres"
	"github.com/okulikov/docrag/internal/infrastructure/resilience"
	"github.com/okulikov/docrag/internal/infrastructure/vector/qdrant"
	"github.com/okulikov/docrag/internal/infrastructure/windowing"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     ports.ReindexQueue
	Catalog   ports.DocumentCatalog
	ReindexUC ports.CorpusReindexer
	QueryUC   ports.QueryService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	catalog := postgres.NewCatalog(db)
	if err := catalog.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init reindex queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)

	fileLoader := loader.New(logger)
	walker := loader.NewWalker(fileLoader, cfg.DataFolder, cfg.Departments, logger)
	if err := walker.EnsureLayout(); err != nil {
		return nil, fmt.Errorf("ensure corpus layout: %w", err)
	}
	inspector := loader.NewInspector(cfg.DataFolder, cfg.Departments, logger)

	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	refiner := windowing.NewRefiner(cfg.WindowSize, cfg.PrefixSentences, cfg.PrefixMinChars, logger)

	reindexUC := usecase.NewReindexUseCase(walker, chunker, embedder, vectorDB, catalog, inspector, logger)
	queryUC := usecase.NewQueryUseCase(embedder, vectorDB, refiner, generator, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:     queue,
		Catalog:   catalog,
		ReindexUC: reindexUC,
		QueryUC:   queryUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
