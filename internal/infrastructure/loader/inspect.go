package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/okulikov/docrag/internal/core/domain"
)

// Inspector derives descriptive metadata for a single file from filesystem
// state only; document content is never read.
type Inspector struct {
	root        string
	departments []string
	logger      *slog.Logger
}

func NewInspector(root string, departments []string, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	if len(departments) == 0 {
		departments = domain.DefaultDepartments()
	}
	return &Inspector{root: root, departments: departments, logger: logger}
}

// Info returns ok=false for a missing path instead of an error. Unexpected
// stat failures are logged and also degrade to the empty result.
func (ins *Inspector) Info(path string) (domain.DocumentInfo, bool) {
	st, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			ins.logger.Error("stat document", "path", path, "error", err)
		}
		return domain.DocumentInfo{}, false
	}

	return domain.DocumentInfo{
		Filename:   filepath.Base(path),
		FilePath:   path,
		FileSize:   st.Size(),
		FileType:   strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
		Department: inferDepartment(ins.root, path, ins.departments),
	}, true
}
