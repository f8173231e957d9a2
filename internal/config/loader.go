package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default sources file name.
const DefaultConfigFile = ".rmpscrape"

// ErrConfigNotFound is returned when the sources file does not exist.
var ErrConfigNotFound = errors.New("sources file not found")

// File is the on-disk shape of the sources file.
type File struct {
	// BaseURL optionally overrides the listing URL prefix.
	BaseURL string `yaml:"baseUrl,omitempty"`

	// OutputDir optionally overrides the CSV output directory.
	OutputDir string `yaml:"outputDir,omitempty"`

	// Sources is the list of schools to scrape.
	Sources []Source `yaml:"sources"`
}

// LoadConfigFile loads the sources list from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}

// FindConfigFile searches for the sources file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .rmpscrape in the current directory
// 3. Look for .rmpscrape in the user's home directory
//
// Returns the path to the sources file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges the file's contents into the config. Non-empty file fields
// override the corresponding config fields; an empty sources list leaves the
// existing (default) sources in place.
func (f *File) Apply(cfg *Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if len(f.Sources) > 0 {
		cfg.Sources = f.Sources
	}
}
