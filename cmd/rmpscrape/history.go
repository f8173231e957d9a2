package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/config"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/database"
)

// NewHistoryCmd creates the history command.
// This command inspects past runs stored in the run-history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [school-name]",
		Short: "Show past scrape runs from the run-history database",
		Long: `History lists past scrape runs saved by the scrape command.

Every scrape saves one row per school: when it ran, how many records it
collected, whether the results were truncated, and how long it took. A
school whose record count suddenly drops usually means the listing site
changed its markup.

Examples:
  # List recent runs across all schools
  rmpscrape history

  # List recent runs for one school
  rmpscrape history "Acadia University"

  # List every school present in the database
  rmpscrape history --list-schools

  # Show the last 3 runs for one school in JSON
  rmpscrape history -n 3 -j "Acadia University"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-schools", "L", false,
		"List all schools present in the database")
	cmd.Flags().IntP("limit", "n", 10,
		"Maximum number of runs to show (0 for no limit)")
	cmd.Flags().BoolP("json", "j", false,
		"Output runs in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listSchools, err := cmd.Flags().GetBool("list-schools")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// The history command never creates the database; without a prior
	// scrape there is nothing to show.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listSchools {
		return listStoredSchools(ctx, cmd, db)
	}

	var runs []database.Run
	if len(args) > 0 {
		runs, err = db.History(ctx, args[0], limit)
	} else {
		runs, err = db.AllRuns(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to query run history: %w", err)
	}

	if len(runs) == 0 {
		if len(args) > 0 {
			return fmt.Errorf("no runs found for %q (use --list-schools to see available schools)", args[0])
		}
		return errors.New("no runs found (run 'rmpscrape scrape' first)")
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	printRuns(cmd, runs)
	return nil
}

// listStoredSchools prints the distinct school names in the database.
func listStoredSchools(ctx context.Context, cmd *cobra.Command, db *database.ScrapeDB) error {
	schools, err := db.Sources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schools: %w", err)
	}
	if len(schools) == 0 {
		return errors.New("no runs found (run 'rmpscrape scrape' first)")
	}

	for _, s := range schools {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

// printRuns renders runs as an aligned text table.
func printRuns(cmd *cobra.Command, runs []database.Run) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHOOL\tDATE\tRECORDS\tSTATUS\tDURATION")

	for _, r := range runs {
		status := "complete"
		switch {
		case r.Truncated:
			status = "truncated"
		case r.RecordCount == 0:
			status = "empty"
		case r.WarningCount > 0:
			status = fmt.Sprintf("complete (%d warnings)", r.WarningCount)
		}

		date := "unknown"
		if !r.Timestamp.IsZero() {
			date = r.Timestamp.Format("2006-01-02 15:04")
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Source, date, r.RecordCount, status,
			r.Duration.Round(time.Second))
	}

	_ = w.Flush() //nolint:errcheck // Best effort output
}
