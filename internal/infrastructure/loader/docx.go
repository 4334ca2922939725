package loader

import (
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/okulikov/docrag/internal/core/domain"
)

// loadDOCX extracts the document body as a single section unit, paragraphs
// and tables joined in document order. Page numbers do not exist in the
// DOCX model, so the unit carries none.
func (l *Loader) loadDOCX(path, source, dept string) []domain.TextUnit {
	f, err := os.Open(path)
	if err != nil {
		l.logger.Error("open docx", "path", path, "error", err)
		return []domain.TextUnit{errorUnit("DOCX", path, dept, err)}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		l.logger.Error("stat docx", "path", path, "error", err)
		return []domain.TextUnit{errorUnit("DOCX", path, dept, err)}
	}

	doc, err := docx.Parse(f, st.Size())
	if err != nil {
		l.logger.Error("parse docx", "path", path, "error", err)
		return []domain.TextUnit{errorUnit("DOCX", path, dept, err)}
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			writeBlock(&sb, block.String())
		case *docx.Table:
			writeBlock(&sb, block.String())
		}
	}

	l.logger.Debug("loaded docx", "path", path, "chars", sb.Len())
	return []domain.TextUnit{{
		Content:    strings.TrimRight(sb.String(), "\n"),
		Source:     source,
		FilePath:   path,
		FileType:   string(domain.FileTypeDOCX),
		Department: dept,
	}}
}

func writeBlock(sb *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	sb.WriteString(text)
	sb.WriteString("\n")
}
