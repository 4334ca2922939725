package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/okulikov/docrag/internal/core/domain"
)

func TestInspectorInfoDescribesFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "technical", "Manual.PDF")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, ok := NewInspector(root, domain.DefaultDepartments(), nil).Info(path)
	if !ok {
		t.Fatalf("expected ok for existing file")
	}
	if info.Filename != "Manual.PDF" || info.FilePath != path {
		t.Fatalf("unexpected identity: %+v", info)
	}
	if info.FileSize != 5 {
		t.Fatalf("FileSize = %d, want 5", info.FileSize)
	}
	if info.FileType != "pdf" {
		t.Fatalf("FileType = %q, want pdf (lowercased, no dot)", info.FileType)
	}
	if info.Department != "technical" {
		t.Fatalf("Department = %q, want technical", info.Department)
	}
}

func TestInspectorInfoMissingFile(t *testing.T) {
	info, ok := NewInspector(t.TempDir(), nil, nil).Info(filepath.Join(t.TempDir(), "gone.txt"))
	if ok {
		t.Fatalf("expected ok=false for missing file")
	}
	if !info.IsZero() {
		t.Fatalf("expected zero info, got %+v", info)
	}
}
