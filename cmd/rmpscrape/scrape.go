package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/browser"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/config"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/database"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/log"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/report"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/scraper"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape professor ratings for the configured schools",
		Long: `Scrape pages through each configured school's listing and writes one
CSV file per school with the columns:

  Name, Rating, Would Take Again (%), Difficulty, Department

Schools are scraped concurrently, each in its own browser session. A session
repeatedly activates the listing's "Show More" control until the control
disappears or the pagination budget expires; a session that runs out of
budget keeps its partial results and marks them as truncated.

Examples:
  # Scrape the configured schools with defaults
  rmpscrape scrape

  # Use a custom sources file and output directory
  rmpscrape scrape -c mysources.yaml -o results

  # Watch the browser sessions while debugging selectors
  rmpscrape scrape --no-headless --sessions 1 -v

  # Write a Markdown run summary next to the CSV files
  rmpscrape scrape -m --summary-file results/summary.md

Sources file (.rmpscrape) example:
  sources:
    - name: Acadia University
      remoteId: 1406
    - name: Carleton University
      remoteId: 1420`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	// Browser flags
	cmd.Flags().String("browser", "",
		"Path to the browser binary (default: managed download)")
	cmd.Flags().Bool("no-headless", false,
		"Show browser windows while scraping (useful for debugging)")

	// Concurrency flags
	cmd.Flags().IntP("sessions", "s", config.DefaultMaxSessions(),
		"Number of schools scraped concurrently")
	cmd.Flags().IntP("extractors", "e", config.DefaultMaxExtractors,
		"Number of record panels extracted concurrently per session")

	// Timing flags
	cmd.Flags().DurationP("wait-timeout", "w", config.DefaultWaitTimeout,
		"Timeout for locating elements on a page")
	cmd.Flags().DurationP("budget", "b", config.DefaultPaginationBudget,
		"Wall-clock pagination limit per school (0 scrapes the initial page only)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Sources file path (default: .rmpscrape in current or home directory)")

	// Output flags
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory for per-school CSV files")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a Markdown run summary after all sessions finish")
	cmd.Flags().String("summary-file", "",
		"Write the Markdown summary to this file instead of stdout")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with run-level warning collection
	collector := log.NewCollector()
	logger := log.NewLogger(os.Stderr, cfg.Verbose, collector)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cfg, logger, collector)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.BrowserPath, err = cmd.Flags().GetString("browser")
	if err != nil {
		return nil, err
	}

	noHeadless, err := cmd.Flags().GetBool("no-headless")
	if err != nil {
		return nil, err
	}
	cfg.Headless = !noHeadless

	cfg.MaxSessions, err = cmd.Flags().GetInt("sessions")
	if err != nil {
		return nil, err
	}

	cfg.MaxExtractors, err = cmd.Flags().GetInt("extractors")
	if err != nil {
		return nil, err
	}

	cfg.WaitTimeout, err = cmd.Flags().GetDuration("wait-timeout")
	if err != nil {
		return nil, err
	}

	cfg.PaginationBudget, err = cmd.Flags().GetDuration("budget")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SummaryFile, err = cmd.Flags().GetString("summary-file")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Load the sources file.
	// If user explicitly specified a path, error if not found.
	// If no path specified, silently fall back to the built-in sources.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load sources file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		// User explicitly specified a sources file that doesn't exist
		return nil, fmt.Errorf("sources file not found: %s", cfg.ConfigFilePath)
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runScrape executes the scrape run.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger, collector *log.Collector) error {
	// An explicit browser path must point at a runnable binary before any
	// session starts; failing one session at a time would waste the run.
	if err := browser.CheckBinary(cfg.BrowserPath); err != nil {
		return fmt.Errorf("browser check failed: %w", err)
	}

	logger.Info("starting scrape",
		"sources", len(cfg.Sources),
		"outputDir", cfg.OutputDir,
		"maxSessions", cfg.MaxSessions,
		"headless", cfg.Headless,
	)

	// Open database connection if saving is enabled
	var db *database.ScrapeDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	sink := newScrapeSink(cfg, db, logger)

	fmt.Printf("Scraping %d school(s) (concurrency: %d)...\n\n",
		len(cfg.Sources), cfg.MaxSessions)
	startTime := time.Now()

	s := scraper.New(cfg, browser.NewRodFactory(cfg.BrowserPath, cfg.Headless),
		scraper.WithLogger(logger))
	runErr := s.Run(ctx, cfg.Sources, sink)

	fmt.Printf("\nScrape completed in %s\n", time.Since(startTime).Round(time.Millisecond))
	if n := collector.Count(); n > 0 {
		fmt.Printf("%d warning(s) emitted; rerun with -v for details\n", n)
	}

	// Write the summary even when a session failed: partial results from the
	// surviving sessions are still worth reporting.
	if cfg.MarkdownSummary {
		if err := writeSummary(cfg, sink.Results()); err != nil {
			logger.Error("failed to write summary", "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	return runErr
}

// scrapeSink persists each completed session's result: a CSV file per
// source, a run-history row, and an in-memory copy for the summary.
// Sessions call Write concurrently.
type scrapeSink struct {
	cfg    *config.Config
	db     *database.ScrapeDB
	logger *slog.Logger

	// outputPaths maps source name to CSV destination, resolved up front so
	// Write only needs the result.
	outputPaths map[string]string

	mu      sync.Mutex
	results []*model.SourceResult
}

// newScrapeSink creates a sink for the configured sources.
func newScrapeSink(cfg *config.Config, db *database.ScrapeDB, logger *slog.Logger) *scrapeSink {
	paths := make(map[string]string, len(cfg.Sources))
	for _, src := range cfg.Sources {
		paths[src.Name] = src.OutputPath(cfg.OutputDir)
	}

	return &scrapeSink{
		cfg:         cfg,
		db:          db,
		logger:      logger,
		outputPaths: paths,
	}
}

// Write persists one session's result.
func (s *scrapeSink) Write(ctx context.Context, result *model.SourceResult) error {
	path, ok := s.outputPaths[result.Source]
	if !ok {
		return fmt.Errorf("no output path configured for source %q", result.Source)
	}

	if err := writeCSV(path, result); err != nil {
		return err
	}
	s.logger.Info("wrote records",
		"source", result.Source,
		"records", len(result.Records),
		"path", path,
	)

	status := ""
	if result.Truncated {
		status = " (truncated)"
	}
	fmt.Printf("Scraped %s: %d record(s)%s -> %s\n",
		result.Source, len(result.Records), status, path)

	if s.db != nil {
		if _, err := s.db.SaveRun(ctx, result); err != nil {
			return fmt.Errorf("failed to save run for %s: %w", result.Source, err)
		}
	}

	s.mu.Lock()
	s.results = append(s.results, result)
	s.mu.Unlock()

	return nil
}

// Results returns the collected results sorted by source name. Sessions
// finish in arbitrary order, so sorting keeps the summary deterministic.
func (s *scrapeSink) Results() []*model.SourceResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.results)
	slices.SortFunc(out, func(a, b *model.SourceResult) int {
		return strings.Compare(a.Source, b.Source)
	})
	return out
}

// writeCSV writes one source's records to its CSV file.
func writeCSV(path string, result *model.SourceResult) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Path derives from user config
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewCSVWriter(f).Write(result); err != nil {
		return fmt.Errorf("failed to write CSV for %s: %w", result.Source, err)
	}
	return nil
}

// writeSummary writes the Markdown run summary to the configured
// destination, stdout when no file is set.
func writeSummary(cfg *config.Config, results []*model.SourceResult) error {
	var output *os.File
	if cfg.SummaryFile != "" {
		if dir := filepath.Dir(cfg.SummaryFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create summary directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.SummaryFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Path derives from user config
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	_, err := report.NewMarkdownWriter(output).WriteSummary(results)
	return err
}
