package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okulikov/docrag/internal/core/domain"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

// handleQueryDocuments handles the query_documents tool invocation
func (s *Server) handleQueryDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "query parameter is required", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	req := domain.QueryRequest{
		Query:      query,
		Department: getStringDefault(args, "department", ""),
		Language:   getStringDefault(args, "language", ""),
	}
	if _, present := args["max_results"]; present {
		limit := getIntDefault(args, "max_results", 5)
		req.MaxResults = &limit
	}
	if val, ok := args["include_metadata"].(bool); ok {
		req.IncludeMetadata = &val
	}

	resp, err := s.queryUC.Answer(ctx, req)
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "query failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	sources := make([]map[string]interface{}, 0, len(resp.Sources))
	for _, src := range resp.Sources {
		entry := map[string]interface{}{
			"content":   src.Content,
			"relevance": src.Relevance,
		}
		if src.Source != "" {
			entry["source"] = src.Source
			entry["department"] = src.Department
			if src.Page > 0 {
				entry["page"] = src.Page
			}
		}
		sources = append(sources, entry)
	}

	response := map[string]interface{}{
		"response":  resp.Response,
		"sources":   sources,
		"timestamp": resp.Timestamp,
	}
	if resp.Metrics != nil {
		response["metrics"] = map[string]interface{}{
			"retrieval_time_s":  resp.Metrics.RetrievalTime,
			"generation_time_s": resp.Metrics.GenerationTime,
			"context_relevance": resp.Metrics.ContextRelevance,
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListDocuments handles the list_documents tool invocation
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	department := getStringDefault(args, "department", "")

	records, err := s.catalog.ListDocuments(ctx, department)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list documents", map[string]interface{}{
			"error": err.Error(),
		})
	}

	documents := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		documents = append(documents, map[string]interface{}{
			"filename":    rec.Filename,
			"file_path":   rec.FilePath,
			"file_size":   rec.FileSize,
			"file_type":   rec.FileType,
			"department":  rec.Department,
			"page_count":  rec.PageCount,
			"chunk_count": rec.ChunkCount,
			"status":      string(rec.Status),
		})
	}

	response := map[string]interface{}{
		"documents": documents,
		"total":     len(documents),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleReindexCorpus handles the reindex_corpus tool invocation
func (s *Server) handleReindexCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	department := getStringDefault(args, "department", "")

	if err := s.queue.PublishReindexRequested(ctx, department); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to queue reindex", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"status":     "queued",
		"department": department,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if args == nil {
		return defaultValue
	}
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
