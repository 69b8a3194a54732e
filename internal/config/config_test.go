package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/workspace"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"LitgraphPath", LitgraphPath, "/test/workspace/.litgraph"},
		{"ConfigPath", ConfigPath, "/test/workspace/.litgraph/config.yml"},
		{"DBPath", DBPath, "/test/workspace/.litgraph/papers.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsWorkspace(t *testing.T) {
	tmpDir := t.TempDir()

	if IsWorkspace(tmpDir) {
		t.Error("IsWorkspace() = true for plain directory")
	}

	if err := os.Mkdir(LitgraphPath(tmpDir), 0755); err != nil {
		t.Fatalf("creating .litgraph: %v", err)
	}

	if !IsWorkspace(tmpDir) {
		t.Error("IsWorkspace() = false for workspace directory")
	}
}

func TestFindWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, LitgraphDir), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	root, err := FindWorkspace(nested)
	if err != nil {
		t.Fatalf("FindWorkspace() error: %v", err)
	}
	// tmpDir may contain symlinked components; compare resolved paths.
	wantRoot, _ := filepath.EvalSymlinks(tmpDir)
	gotRoot, _ := filepath.EvalSymlinks(root)
	if gotRoot != wantRoot {
		t.Errorf("FindWorkspace() = %q, want %q", root, tmpDir)
	}

	if _, err := FindWorkspace(t.TempDir()); err == nil {
		t.Error("FindWorkspace() outside a workspace returned nil error")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(LitgraphPath(root), 0755); err != nil {
		t.Fatal(err)
	}

	recursive := false
	cfg := &Config{
		PDFRoot:             "/data/papers",
		Recursive:           &recursive,
		MaxPages:            8,
		SimilarityThreshold: 0.55,
		Model:               "gpt-4o",
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.PDFRoot != "/data/papers" || got.MaxPages != 8 || got.Model != "gpt-4o" {
		t.Errorf("round trip = %+v", got)
	}
	if got.ScanRecursive() {
		t.Error("explicit recursive=false lost in round trip")
	}
	if got.Threshold() != 0.55 {
		t.Errorf("Threshold() = %f, want 0.55", got.Threshold())
	}
}

func TestLoadMissingConfig(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() without config file returned nil error")
	}
}

func TestAccessorDefaults(t *testing.T) {
	cfg := &Config{}

	if !cfg.ScanRecursive() {
		t.Error("ScanRecursive() default = false, want true")
	}
	if !cfg.OrganizeByCopy() {
		t.Error("OrganizeByCopy() default = false, want true")
	}
	if cfg.PagesToParse() != DefaultMaxPages {
		t.Errorf("PagesToParse() = %d", cfg.PagesToParse())
	}
	if cfg.AbstractLimit() != DefaultMaxAbstractLen {
		t.Errorf("AbstractLimit() = %d", cfg.AbstractLimit())
	}
	if cfg.Threshold() != DefaultSimilarityThreshold {
		t.Errorf("Threshold() = %f", cfg.Threshold())
	}
	if cfg.Features() != DefaultMaxFeatures {
		t.Errorf("Features() = %d", cfg.Features())
	}
	if got := cfg.ClassifiedPath("/ws"); got != filepath.Join("/ws", DefaultClassifiedDir) {
		t.Errorf("ClassifiedPath() = %q", got)
	}
	if got := cfg.GraphOutputPath("/ws"); got != filepath.Join("/ws", DefaultGraphOutput) {
		t.Errorf("GraphOutputPath() = %q", got)
	}

	// Absolute overrides are kept as is.
	cfg.ClassifiedDir = "/elsewhere/archive"
	if got := cfg.ClassifiedPath("/ws"); got != "/elsewhere/archive" {
		t.Errorf("absolute ClassifiedPath() = %q", got)
	}
}
