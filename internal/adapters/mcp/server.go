package mcpadapter

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/okulikov/docrag/internal/core/ports"
)

const (
	// ServerName is the MCP server name
	ServerName = "docrag"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server exposes the document pipeline over MCP so agent hosts can
// query the corpus with the same semantics as the HTTP API.
type Server struct {
	mcp     *server.MCPServer
	queryUC ports.QueryService
	catalog ports.DocumentCatalog
	queue   ports.ReindexQueue
	logger  *slog.Logger
}

func NewServer(
	queryUC ports.QueryService,
	catalog ports.DocumentCatalog,
	queue ports.ReindexQueue,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		queryUC: queryUC,
		catalog: catalog,
		queue:   queue,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(_ context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(queryDocumentsTool(), s.handleQueryDocuments)
	s.mcp.AddTool(listDocumentsTool(), s.handleListDocuments)
	s.mcp.AddTool(reindexCorpusTool(), s.handleReindexCorpus)
}
