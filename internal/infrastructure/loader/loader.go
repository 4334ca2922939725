// Package loader converts heterogeneous office documents into uniform,
// provenance-tagged text units. Every failure path is folded into a single
// error-flagged unit so that batch ingestion of many files is never aborted
// by one bad file.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/okulikov/docrag/internal/core/domain"
)

// Diagnostic messages embedded in error units are cut to a bounded prefix:
// parser errors for corrupt files can carry arbitrarily long context.
const errMessageLimit = 240

type Loader struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load dispatches on the file extension and returns one unit per page
// (PDF), per section (DOCX) or per file (TXT). An empty department defaults
// to "general"; folder-based inference is the walker's job.
func (l *Loader) Load(_ context.Context, path, department string) []domain.TextUnit {
	dept := department
	if dept == "" {
		dept = domain.DepartmentGeneral
	}
	source := filepath.Base(path)

	switch domain.FileTypeFromPath(path) {
	case domain.FileTypeText:
		return l.loadText(path, source, dept)
	case domain.FileTypePDF:
		return l.loadPDF(path, source, dept)
	case domain.FileTypeDOCX:
		return l.loadDOCX(path, source, dept)
	default:
		ext := strings.ToLower(filepath.Ext(path))
		l.logger.Warn("unsupported file type", "path", path, "ext", ext)
		return []domain.TextUnit{{
			Content:    fmt.Sprintf("[Unsupported file type: %s]", ext),
			Source:     source,
			FilePath:   path,
			FileType:   strings.TrimPrefix(ext, "."),
			Department: dept,
			PageNumber: 1,
			Error:      true,
		}}
	}
}

func errorUnit(kind, path, dept string, err error) domain.TextUnit {
	msg := err.Error()
	if len(msg) > errMessageLimit {
		msg = msg[:errMessageLimit]
	}
	return domain.TextUnit{
		Content:    fmt.Sprintf("[Error loading %s content: %s]", kind, msg),
		Source:     filepath.Base(path),
		FilePath:   path,
		FileType:   strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
		Department: dept,
		PageNumber: 1,
		Error:      true,
	}
}
