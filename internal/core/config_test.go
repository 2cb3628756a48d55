package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pocascade.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_NotFound(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency || cfg.CacheSize != DefaultCacheSize {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if len(cfg.Exclude.Paths) != 0 {
		t.Errorf("expected no excludes, got %v", cfg.Exclude.Paths)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `concurrency: 2
cache_size: 16
exclude:
  paths:
    - "vendor/*"
    - "generated/*"
`)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("concurrency = %d, want 2", cfg.Concurrency)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("cache_size = %d, want 16", cfg.CacheSize)
	}
	if len(cfg.Exclude.Paths) != 2 {
		t.Errorf("paths = %v, want 2 items", cfg.Exclude.Paths)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "concurrency: 3\n")
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 3 || cfg.CacheSize != DefaultCacheSize {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("concurrency = %d, want default", cfg.Concurrency)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ":::invalid")
	_, err := LoadConfig(dir)
	if err == nil || !strings.Contains(err.Error(), "pocascade.yaml") {
		t.Fatalf("expected pocascade.yaml error, got %v", err)
	}
}

func TestLoadConfig_NegativeConcurrency(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "concurrency: -1\n")
	_, err := LoadConfig(dir)
	if err == nil || !strings.Contains(err.Error(), "concurrency") {
		t.Fatalf("expected concurrency error, got %v", err)
	}
}

func TestLoadConfig_CharacterClassRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "exclude:\n  paths:\n    - \"[ab]/*\"\n")
	_, err := LoadConfig(dir)
	if err == nil || !strings.Contains(err.Error(), "character class") {
		t.Fatalf("expected character class error, got %v", err)
	}
}

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern, s string
		want       bool
	}{
		{"vendor/*", "vendor/a.po.js", true},
		{"vendor/*", "vendor/deep/a.po.js", true},
		{"*.feature", "features/a.feature", true},
		{"page-objects/?.po.js", "page-objects/a.po.js", true},
		{"page-objects/?.po.js", "page-objects/ab.po.js", false},
		{"vendor/*", "src/vendor/a.po.js", false},
	}
	for _, tt := range tests {
		if got := globMatch(tt.pattern, tt.s); got != tt.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", tt.pattern, tt.s, got, tt.want)
		}
	}
}
