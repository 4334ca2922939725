package mcpadapter

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// queryDocumentsTool returns the tool definition for query_documents
func queryDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "query_documents",
		Description: "Answer a question from the indexed document corpus using retrieval-augmented generation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer from the corpus",
				},
				"department": map[string]interface{}{
					"type":        "string",
					"description": "Restrict retrieval to one department folder (e.g. 'technical')",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Preferred answer language code (e.g. 'en', 'ru')",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of retrieved chunks (1-20)",
					"default":     5,
					"minimum":     1,
					"maximum":     20,
				},
				"include_metadata": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include source file, department and page for each source",
					"default":     true,
				},
			},
			Required: []string{"query"},
		},
	}
}

// listDocumentsTool returns the tool definition for list_documents
func listDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_documents",
		Description: "List documents known to the corpus catalog with their index status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"department": map[string]interface{}{
					"type":        "string",
					"description": "Only list documents from this department folder",
				},
			},
		},
	}
}

// reindexCorpusTool returns the tool definition for reindex_corpus
func reindexCorpusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reindex_corpus",
		Description: "Queue a reindex of the document corpus; the worker picks it up asynchronously",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"department": map[string]interface{}{
					"type":        "string",
					"description": "Reindex only this department folder; omit for the whole corpus",
				},
			},
		},
	}
}
