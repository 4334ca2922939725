package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of prior conversation context supplied with a query.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	defaultMaxResults = 5
	minMaxResults     = 1
	maxMaxResults     = 20
)

// QueryRequest is the schema callers must honor before anything reaches the
// retrieval core. Validation failures are surfaced as ErrInvalidInput and
// rejected at the boundary.
type QueryRequest struct {
	Query            string    `json:"query"`
	Language         string    `json:"language,omitempty"`
	Department       string    `json:"department,omitempty"`
	MaxResults       *int      `json:"max_results,omitempty"`
	IncludeMetadata  *bool     `json:"include_metadata,omitempty"`
	ConversationID   string    `json:"conversation_id,omitempty"`
	PreviousMessages []Message `json:"previous_messages,omitempty"`
}

func (r QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return WrapError(ErrInvalidInput, "validate query request", errors.New("query is required"))
	}
	if r.MaxResults != nil && (*r.MaxResults < minMaxResults || *r.MaxResults > maxMaxResults) {
		return WrapError(ErrInvalidInput, "validate query request",
			fmt.Errorf("max_results must be between %d and %d", minMaxResults, maxMaxResults))
	}
	for i, msg := range r.PreviousMessages {
		if msg.Role == "" || msg.Content == "" {
			return WrapError(ErrInvalidInput, "validate query request",
				fmt.Errorf("previous_messages[%d] must have role and content", i))
		}
		switch msg.Role {
		case RoleUser, RoleAssistant, RoleSystem:
		default:
			return WrapError(ErrInvalidInput, "validate query request",
				fmt.Errorf("previous_messages[%d] role must be user, assistant, or system", i))
		}
	}
	return nil
}

// Limit returns the effective result count after defaulting.
func (r QueryRequest) Limit() int {
	if r.MaxResults == nil {
		return defaultMaxResults
	}
	return *r.MaxResults
}

// WithMetadata reports whether sources should carry document metadata.
// Defaults to true when the field is absent.
func (r QueryRequest) WithMetadata() bool {
	if r.IncludeMetadata == nil {
		return true
	}
	return *r.IncludeMetadata
}

// DocumentSource describes one retrieved excerpt backing an answer.
type DocumentSource struct {
	Source     string  `json:"source"`
	Department string  `json:"department"`
	Page       int     `json:"page,omitempty"`
	Content    string  `json:"content"`
	Relevance  float64 `json:"relevance"`
}

// ResponseMetrics carries optional timing/relevance diagnostics.
type ResponseMetrics struct {
	RetrievalTime    float64 `json:"retrieval_time"`
	GenerationTime   float64 `json:"generation_time"`
	ContextRelevance float64 `json:"context_relevance"`
}

// QueryResponse is the answer payload returned to callers.
type QueryResponse struct {
	Response       string           `json:"response"`
	Sources        []DocumentSource `json:"sources"`
	Metrics        *ResponseMetrics `json:"metrics,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	Timestamp      string           `json:"timestamp"`
	Language       string           `json:"language,omitempty"`
}
