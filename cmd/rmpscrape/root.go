// Package main provides the entry point for the rmpscrape CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for rmpscrape.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmpscrape",
		Short: "Scrape professor ratings from dynamically paginated listing pages",
		Long: `rmpscrape collects professor rating records from RateMyProfessors-style
listing pages. Each school's listing is scraped in its own browser session,
paged through by driving the "Show More" control, and written to a CSV file.

By default the tool scrapes a built-in set of schools. Use 'rmpscrape init'
to generate a sources file and customize the school list.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
