package ollama

import (
	"fmt"
	"strings"

	"github.com/okulikov/docrag/internal/core/domain"
)

func buildAnswerPrompt(question, language string, chunks []domain.RetrievedChunk) string {
	var contextBuilder strings.Builder
	for idx, chunk := range chunks {
		header := fmt.Sprintf("[%d] source=%s department=%s", idx+1, chunk.Source, chunk.Department)
		if chunk.PageNumber > 0 {
			header += fmt.Sprintf(" page=%d", chunk.PageNumber)
		}
		contextBuilder.WriteString(fmt.Sprintf("%s score=%.3f\n%s\n\n", header, chunk.Score, chunk.Content))
	}

	languageHint := ""
	if language != "" {
		languageHint = fmt.Sprintf("Answer in the language with code %q.\n", language)
	}

	return fmt.Sprintf(`Answer the user question only from the document excerpts below.
Cite sources by their bracketed number. If the excerpts are insufficient, say so directly.
%s
Question:
%s

Excerpts:
%s`, languageHint, question, contextBuilder.String())
}
