package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/config"
)

//go:embed templates/rmpscrape.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new rmpscrape sources file",
		Long: `Initialize creates a new .rmpscrape sources file in the current directory.

The generated file includes:
- The built-in school list as a starting point
- Commented examples for base URL and output overrides
- Documentation for all available options

Examples:
  # Create .rmpscrape in current directory
  rmpscrape init

  # Create sources file at a specific path
  rmpscrape init -o mysources.yaml

  # Force overwrite existing file
  rmpscrape init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the sources file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing sources file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("sources file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/rmpscrape.yaml")
	if err != nil {
		return fmt.Errorf("failed to read sources template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write sources file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write sources file: %w", err)
	}

	fmt.Printf("Created sources file: %s\n", outputPath)
	fmt.Println("\nEdit this file to configure:")
	fmt.Println("  - Which schools to scrape and their remote IDs")
	fmt.Println("  - The CSV output directory")
	fmt.Println("  - Per-school output file overrides")

	return nil
}
