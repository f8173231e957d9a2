package config

import (
	"path/filepath"
	"testing"
)

// TestSourceURL verifies listing URL construction from the base URL and
// remote ID, including trailing-slash normalization.
func TestSourceURL(t *testing.T) {
	t.Parallel()

	src := Source{Name: "Acadia University", RemoteID: 1406}

	t.Run("base URL with trailing slash", func(t *testing.T) {
		t.Parallel()
		got := src.URL("https://www.ratemyprofessors.com/search/professors/")
		want := "https://www.ratemyprofessors.com/search/professors/1406"
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("base URL without trailing slash", func(t *testing.T) {
		t.Parallel()
		got := src.URL("https://www.ratemyprofessors.com/search/professors")
		want := "https://www.ratemyprofessors.com/search/professors/1406"
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

// TestSourceOutputPath verifies CSV destination resolution.
func TestSourceOutputPath(t *testing.T) {
	t.Parallel()

	t.Run("explicit override wins", func(t *testing.T) {
		t.Parallel()
		src := Source{Name: "Acadia University", RemoteID: 1406, Output: "/tmp/acadia.csv"}
		if got := src.OutputPath("data"); got != "/tmp/acadia.csv" {
			t.Errorf("expected explicit override, got %s", got)
		}
	})

	t.Run("derived name is slugified into the output dir", func(t *testing.T) {
		t.Parallel()
		src := Source{Name: "Mount Saint Vincent University", RemoteID: 1445}
		want := filepath.Join("data", "mount_saint_vincent_university.csv")
		if got := src.OutputPath("data"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("punctuation is dropped from derived names", func(t *testing.T) {
		t.Parallel()
		src := Source{Name: "St. Mary's (Halifax)", RemoteID: 99}
		want := filepath.Join("out", "st_marys_halifax.csv")
		if got := src.OutputPath("out"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

// TestDefaultSources verifies the built-in source list stays intact.
func TestDefaultSources(t *testing.T) {
	t.Parallel()

	sources := DefaultSources()
	if len(sources) != 5 {
		t.Fatalf("expected 5 default sources, got %d", len(sources))
	}

	want := map[string]int{
		"Acadia University":                   1406,
		"Carleton University":                 1420,
		"Memorial University of Newfoundland": 1441,
		"Mount Allison University":            1444,
		"Mount Saint Vincent University":      1445,
	}
	for _, src := range sources {
		id, ok := want[src.Name]
		if !ok {
			t.Errorf("unexpected source %q", src.Name)
			continue
		}
		if src.RemoteID != id {
			t.Errorf("source %q: expected remote ID %d, got %d", src.Name, id, src.RemoteID)
		}
		if err := src.Validate(); err != nil {
			t.Errorf("default source %q failed validation: %v", src.Name, err)
		}
	}
}
