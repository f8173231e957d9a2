package config

import (
	"net/url"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The timing values mirror the human-like pacing the listing site tolerates;
// tightening them risks rate limiting or bot detection.
const (
	// DefaultBaseURL is the listing URL prefix. A source's remote ID is
	// appended to form the full page URL.
	DefaultBaseURL = "https://www.ratemyprofessors.com/search/professors/"

	// DefaultWaitTimeout bounds every element lookup. Expiry while locating
	// the "Show More" control is the normal end-of-listing signal, so this
	// value directly sets how long the scraper waits before concluding a
	// listing is exhausted. 4 seconds covers slow page loads without
	// stalling sessions on genuinely absent elements.
	DefaultWaitTimeout = 4 * time.Second

	// DefaultPaginationBudget is the wall-clock limit for driving the
	// "Show More" control on a single source. Large schools can take many
	// minutes to page through; 20 minutes keeps runaway listings bounded
	// while letting typical listings finish.
	DefaultPaginationBudget = 20 * time.Minute

	// DefaultStartupDelayMin and DefaultStartupDelayMax bound the random
	// delay before each session navigates. Staggering session starts keeps
	// concurrent sessions from hitting the site in lockstep.
	DefaultStartupDelayMin = 2 * time.Second
	DefaultStartupDelayMax = 4 * time.Second

	// DefaultClickDelayMin and DefaultClickDelayMax bound the random pause
	// before each "Show More" activation, imitating human pacing.
	DefaultClickDelayMin = 500 * time.Millisecond
	DefaultClickDelayMax = 1500 * time.Millisecond

	// DefaultMaxExtractors is the number of record panels extracted
	// concurrently within one session. Higher values gain little because
	// all extractors share one browser page.
	DefaultMaxExtractors = 6

	// DefaultOutputDir is where per-source CSV files are written.
	DefaultOutputDir = "data"

	// AppName is the application name used for XDG directory paths.
	AppName = "rmpscrape"
)

// DefaultMaxSessions returns the default number of concurrent source
// sessions: half the logical CPU count, but at least 2. When the CPU count
// cannot be determined a nominal count of 4 is assumed. Browser sessions are
// memory-heavy, so running one per CPU would thrash most machines.
func DefaultMaxSessions() int {
	n := runtime.NumCPU()
	if n <= 0 {
		n = 4
	}
	p := n / 2
	if p < 2 {
		p = 2
	}
	return p
}

// Config holds all configuration options for rmpscrape.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., TimingConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the listing URL prefix that remote IDs are appended to.
	BaseURL string

	// Sources is the list of schools to scrape. Populated from the sources
	// file when one is found, otherwise from DefaultSources.
	Sources []Source

	// OutputDir is the directory for per-source CSV files.
	// Created automatically if it does not exist.
	OutputDir string

	// BrowserPath is an explicit path to the browser binary. When set, the
	// binary must exist and be executable before any session starts. When
	// empty, the rod-managed browser download is used instead.
	BrowserPath string

	// Headless controls whether browser sessions run without a visible
	// window. Disabling it is useful only for debugging selector changes.
	Headless bool

	// MaxSessions is the number of sources scraped concurrently.
	MaxSessions int

	// MaxExtractors is the number of record panels extracted concurrently
	// within one session.
	MaxExtractors int

	// WaitTimeout bounds every element lookup on a page.
	WaitTimeout time.Duration

	// PaginationBudget is the wall-clock limit for driving the "Show More"
	// control on a single source. When it expires the session keeps whatever
	// records it has collected and flags the result as truncated.
	PaginationBudget time.Duration

	// StartupDelayMin and StartupDelayMax bound the random pre-navigation
	// delay per session.
	StartupDelayMin time.Duration
	StartupDelayMax time.Duration

	// ClickDelayMin and ClickDelayMax bound the random pause before each
	// "Show More" activation.
	ClickDelayMin time.Duration
	ClickDelayMax time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// MarkdownSummary enables writing a Markdown run summary after all
	// sessions finish.
	MarkdownSummary bool

	// SummaryFile is the output path for the Markdown summary.
	// When empty the summary is written to stdout.
	SummaryFile string

	// ConfigFilePath is the path to the sources file. If empty, the tool
	// searches for .rmpscrape in the current directory and then in the
	// user's home directory.
	ConfigFilePath string

	// DBDir is the directory path for storing the SQLite run-history
	// database. Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to persist run results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, concurrency).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		Sources:          DefaultSources(),
		OutputDir:        DefaultOutputDir,
		Headless:         true,
		MaxSessions:      DefaultMaxSessions(),
		MaxExtractors:    DefaultMaxExtractors,
		WaitTimeout:      DefaultWaitTimeout,
		PaginationBudget: DefaultPaginationBudget,
		StartupDelayMin:  DefaultStartupDelayMin,
		StartupDelayMax:  DefaultStartupDelayMax,
		ClickDelayMin:    DefaultClickDelayMin,
		ClickDelayMax:    DefaultClickDelayMax,
	}
}

// XDGDataDir returns the XDG data directory for rmpscrape.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/rmpscrape
// On macOS: ~/Library/Application Support/rmpscrape
// On Windows: %LOCALAPPDATA%\rmpscrape
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for rmpscrape.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scraping begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	for _, src := range c.Sources {
		if err := src.Validate(); err != nil {
			return err
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	// Zero timeout would classify every listing as exhausted immediately
	if c.WaitTimeout <= 0 {
		return ErrInvalidWaitTimeout
	}

	// Zero budget is allowed: it means "extract the initial page only"
	if c.PaginationBudget < 0 {
		return ErrInvalidBudget
	}

	if c.MaxSessions <= 0 {
		return ErrInvalidSessions
	}

	if c.MaxExtractors <= 0 {
		return ErrInvalidExtractors
	}

	if c.StartupDelayMin < 0 || c.StartupDelayMin > c.StartupDelayMax {
		return ErrInvalidJitter
	}
	if c.ClickDelayMin < 0 || c.ClickDelayMin > c.ClickDelayMax {
		return ErrInvalidJitter
	}

	return nil
}
