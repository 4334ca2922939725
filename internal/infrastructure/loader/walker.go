package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/okulikov/docrag/internal/core/domain"
	"github.com/okulikov/docrag/internal/core/ports"
)

// Walker enumerates supported files under the department-organized data
// root and dispatches each to the loader. One call is non-recursive;
// LoadAll covers departments by walking each configured subfolder.
type Walker struct {
	loader      ports.FileLoader
	root        string
	departments []string
	logger      *slog.Logger
}

func NewWalker(fl ports.FileLoader, root string, departments []string, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	if len(departments) == 0 {
		departments = domain.DefaultDepartments()
	}
	return &Walker{
		loader:      fl,
		root:        root,
		departments: departments,
		logger:      logger,
	}
}

// EnsureLayout creates the data root and one subfolder per department.
func (w *Walker) EnsureLayout() error {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("create data folder: %w", err)
	}
	for _, dept := range w.departments {
		if err := os.MkdirAll(filepath.Join(w.root, dept), 0o755); err != nil {
			return fmt.Errorf("create department folder %s: %w", dept, err)
		}
	}
	return nil
}

// LoadFolder loads every supported file directly under folder. A missing or
// unreadable folder yields an empty result; the only returned error is a
// context cancellation, checked between per-file iterations.
func (w *Walker) LoadFolder(ctx context.Context, folder, department string) ([]domain.TextUnit, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("read folder", "folder", folder, "error", err)
		}
		return nil, nil
	}

	files := supportedFiles(entries)
	if len(files) == 0 {
		w.logger.Warn("no supported document files", "folder", folder)
		return nil, nil
	}

	var units []domain.TextUnit
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return units, err
		}
		path := filepath.Join(folder, name)
		dept := department
		if dept == "" {
			dept = inferDepartment(w.root, path, w.departments)
		}
		units = append(units, w.loader.Load(ctx, path, dept)...)
	}
	w.logger.Info("loaded folder", "folder", folder, "files", len(files), "units", len(units))
	return units, nil
}

// LoadDepartment loads the single named department folder under the root.
func (w *Walker) LoadDepartment(ctx context.Context, department string) ([]domain.TextUnit, error) {
	return w.LoadFolder(ctx, filepath.Join(w.root, department), department)
}

// LoadAll aggregates the root folder (departments inferred, so files
// directly in root default to "general") followed by each configured
// department folder tagged with its own name.
func (w *Walker) LoadAll(ctx context.Context) ([]domain.TextUnit, error) {
	all, err := w.LoadFolder(ctx, w.root, "")
	if err != nil {
		return all, err
	}
	for _, dept := range w.departments {
		units, err := w.LoadFolder(ctx, filepath.Join(w.root, dept), dept)
		all = append(all, units...)
		if err != nil {
			return all, err
		}
	}
	w.logger.Info("corpus walk complete", "units", len(all))
	return all, nil
}

// supportedFiles keeps discovery order stable: PDF, then DOCX, then TXT,
// each group in directory (name) order.
func supportedFiles(entries []os.DirEntry) []string {
	var pdfs, docxs, txts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch domain.FileTypeFromPath(e.Name()) {
		case domain.FileTypePDF:
			pdfs = append(pdfs, e.Name())
		case domain.FileTypeDOCX:
			docxs = append(docxs, e.Name())
		case domain.FileTypeText:
			txts = append(txts, e.Name())
		}
	}
	out := make([]string, 0, len(pdfs)+len(docxs)+len(txts))
	out = append(out, pdfs...)
	out = append(out, docxs...)
	out = append(out, txts...)
	return out
}

// inferDepartment maps a file's position relative to the data root onto a
// known department: first path segment when the file sits in a recognized
// subfolder, "general" otherwise.
func inferDepartment(root, path string, known []string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return domain.DepartmentGeneral
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) > 1 {
		for _, dept := range known {
			if parts[0] == dept {
				return dept
			}
		}
	}
	return domain.DepartmentGeneral
}
