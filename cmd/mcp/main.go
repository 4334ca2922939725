package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/okulikov/docrag/internal/adapters/mcp"
	"github.com/okulikov/docrag/internal/bootstrap"
	"github.com/okulikov/docrag/internal/config"
	"github.com/okulikov/docrag/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewJSONLogger("mcp", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	server := mcpadapter.NewServer(app.QueryUC, app.Catalog, app.Queue, logger)
	logger.Info("mcp server starting on stdio")
	if err := server.Serve(ctx); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}
