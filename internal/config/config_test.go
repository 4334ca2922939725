package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkSize != 500 {
		t.Fatalf("expected default chunk size 500, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 200 {
		t.Fatalf("expected default overlap 200, got %d", cfg.ChunkOverlap)
	}
	if cfg.WindowSize != 2 {
		t.Fatalf("expected default window size 2, got %d", cfg.WindowSize)
	}
	if len(cfg.Departments) != 5 || cfg.Departments[0] != "general" {
		t.Fatalf("unexpected default departments: %v", cfg.Departments)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "800")
	t.Setenv("DEPARTMENTS", "general, legal ,finance")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkSize != 800 {
		t.Fatalf("expected chunk size 800, got %d", cfg.ChunkSize)
	}
	want := []string{"general", "legal", "finance"}
	if len(cfg.Departments) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Departments)
	}
	for i := range want {
		if cfg.Departments[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, cfg.Departments)
		}
	}
}

func TestLoadFileOverlayWinsOverEnvDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "chunk_size: 600\nwindow_size: 3\ndepartments:\n  - general\n  - safety\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkSize != 600 {
		t.Fatalf("expected overlay chunk size 600, got %d", cfg.ChunkSize)
	}
	if cfg.WindowSize != 3 {
		t.Fatalf("expected overlay window size 3, got %d", cfg.WindowSize)
	}
	if len(cfg.Departments) != 2 || cfg.Departments[1] != "safety" {
		t.Fatalf("unexpected departments: %v", cfg.Departments)
	}
}

func TestLoadMissingOverlayFileIsIgnored(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err != nil {
		t.Fatalf("missing overlay should not fail: %v", err)
	}
}

func TestNormalizeClampsOverlap(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "150")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ChunkOverlap != 25 {
		t.Fatalf("expected clamped overlap 25, got %d", cfg.ChunkOverlap)
	}
}
