package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfigFile tests YAML sources file parsing.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file parses sources and overrides", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rmpscrape")
		content := `baseUrl: https://example.com/professors/
outputDir: out
sources:
  - name: Acadia University
    remoteId: 1406
  - name: Carleton University
    remoteId: 1420
    output: carleton.csv
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if f.BaseURL != "https://example.com/professors/" {
			t.Errorf("unexpected baseUrl: %s", f.BaseURL)
		}
		if f.OutputDir != "out" {
			t.Errorf("unexpected outputDir: %s", f.OutputDir)
		}
		if len(f.Sources) != 2 {
			t.Fatalf("expected 2 sources, got %d", len(f.Sources))
		}
		if f.Sources[1].Output != "carleton.csv" {
			t.Errorf("unexpected output override: %s", f.Sources[1].Output)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".rmpscrape")
		if err := os.WriteFile(path, []byte("sources: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected parse error for malformed YAML")
		}
	})
}

// TestFindConfigFile tests the explicit-path branch of config discovery.
// The cwd/home fallbacks depend on the test environment and are not asserted.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.yaml")
		if err := os.WriteFile(path, []byte("sources: []"), 0600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty string, got %s", got)
		}
	})
}

// TestFileApply verifies the merge semantics of the sources file over the
// compiled-in defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-empty fields override defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		f := &File{
			BaseURL:   "https://example.com/",
			OutputDir: "out",
			Sources:   []Source{{Name: "Acadia University", RemoteID: 1406}},
		}
		f.Apply(cfg)

		if cfg.BaseURL != "https://example.com/" {
			t.Errorf("expected base URL override, got %s", cfg.BaseURL)
		}
		if cfg.OutputDir != "out" {
			t.Errorf("expected output dir override, got %s", cfg.OutputDir)
		}
		if len(cfg.Sources) != 1 {
			t.Errorf("expected 1 source, got %d", len(cfg.Sources))
		}
	})

	t.Run("empty file leaves defaults in place", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		defaults := len(cfg.Sources)
		(&File{}).Apply(cfg)

		if cfg.BaseURL != DefaultBaseURL {
			t.Errorf("expected default base URL, got %s", cfg.BaseURL)
		}
		if len(cfg.Sources) != defaults {
			t.Errorf("expected %d default sources, got %d", defaults, len(cfg.Sources))
		}
	})
}
