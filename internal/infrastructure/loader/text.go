package loader

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/okulikov/docrag/internal/core/domain"
)

// loadText reads a plain text file as UTF-8, retrying with a Latin-1
// decode when the bytes are not valid UTF-8. The whole file becomes one
// unit without a page number.
func (l *Loader) loadText(path, source, dept string) []domain.TextUnit {
	raw, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error("read text file", "path", path, "error", err)
		return []domain.TextUnit{errorUnit("TXT", path, dept, err)}
	}

	content := string(raw)
	if !utf8.Valid(raw) {
		decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if decErr != nil {
			l.logger.Error("decode text file", "path", path, "error", decErr)
			return []domain.TextUnit{errorUnit("TXT", path, dept, decErr)}
		}
		content = string(decoded)
		l.logger.Info("text file decoded with latin-1 fallback", "path", path)
	}

	l.logger.Debug("loaded text file", "path", path, "chars", len(content))
	return []domain.TextUnit{{
		Content:    content,
		Source:     source,
		FilePath:   path,
		FileType:   string(domain.FileTypeText),
		Department: dept,
	}}
}
