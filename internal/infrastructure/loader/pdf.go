package loader

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/okulikov/docrag/internal/core/domain"
)

// loadPDF extracts one unit per page with 1-based page numbers. The pdf
// parser is known to panic on some malformed inputs, so the whole
// extraction runs behind a recover guard that degrades to a single error
// unit.
func (l *Loader) loadPDF(path, source, dept string) (units []domain.TextUnit) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("pdf extraction panic", "path", path, "panic", r)
			units = []domain.TextUnit{errorUnit("PDF", path, dept, fmt.Errorf("%v", r))}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		l.logger.Error("open pdf", "path", path, "error", err)
		return []domain.TextUnit{errorUnit("PDF", path, dept, err)}
	}
	defer f.Close()

	total := reader.NumPage()
	units = make([]domain.TextUnit, 0, total)
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Error("extract pdf page", "path", path, "page", pageNum, "error", err)
			return []domain.TextUnit{errorUnit("PDF", path, dept, err)}
		}
		units = append(units, domain.TextUnit{
			Content:    text,
			Source:     source,
			FilePath:   path,
			FileType:   string(domain.FileTypePDF),
			Department: dept,
			PageNumber: pageNum,
		})
	}

	l.logger.Debug("loaded pdf", "path", path, "pages", len(units))
	return units
}
