package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Source identifies one school listing to scrape.
// Sources are loaded from the YAML sources file; DefaultSources provides a
// built-in set when no file is present.
type Source struct {
	// Name is the human-readable school name, used in logs, reports, and
	// the run-history database.
	Name string `yaml:"name"`

	// RemoteID is the school's numeric identifier on the listing site.
	// It is appended to the base URL to form the listing page URL.
	RemoteID int `yaml:"remoteId"`

	// Output optionally overrides the CSV file path for this source.
	// When empty, a file name derived from Name is used inside the
	// configured output directory.
	Output string `yaml:"output,omitempty"`
}

// Validate checks that the source has a usable identity.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" || s.RemoteID <= 0 {
		return ErrInvalidSource
	}
	return nil
}

// URL returns the full listing page URL for this source.
func (s Source) URL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + strconv.Itoa(s.RemoteID)
}

// OutputPath returns the CSV destination for this source.
// An explicit Output override wins; otherwise the file name is the slugified
// source name inside outputDir.
func (s Source) OutputPath(outputDir string) string {
	if s.Output != "" {
		return s.Output
	}
	return filepath.Join(outputDir, slugify(s.Name)+".csv")
}

// slugify converts a source name into a safe lowercase file name fragment.
// "Mount Saint Vincent University" becomes "mount_saint_vincent_university".
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// DefaultSources returns the built-in source list used when no sources file
// is found. These are the Canadian universities the tool was originally
// built to track.
func DefaultSources() []Source {
	return []Source{
		{Name: "Acadia University", RemoteID: 1406},
		{Name: "Carleton University", RemoteID: 1420},
		{Name: "Memorial University of Newfoundland", RemoteID: 1441},
		{Name: "Mount Allison University", RemoteID: 1444},
		{Name: "Mount Saint Vincent University", RemoteID: 1445},
	}
}
