package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSources is returned when the merged configuration contains no
	// sources to scrape. This happens when the sources file exists but its
	// list is empty and the defaults were explicitly disabled.
	ErrNoSources = errors.New("no sources configured: provide a sources file or use the built-in defaults")

	// ErrInvalidWaitTimeout is returned when the element wait timeout is not
	// positive. A zero timeout would classify every listing as exhausted
	// immediately.
	ErrInvalidWaitTimeout = errors.New("invalid wait timeout: must be positive")

	// ErrInvalidBudget is returned when the pagination budget is negative.
	// Zero is allowed and means "initial page only"; negative makes no sense.
	ErrInvalidBudget = errors.New("invalid pagination budget: must be non-negative")

	// ErrInvalidSessions is returned when the session concurrency is not
	// positive. Zero sessions would mean no scraping at all.
	ErrInvalidSessions = errors.New("invalid session concurrency: must be positive")

	// ErrInvalidExtractors is returned when the per-session extraction
	// concurrency is not positive.
	ErrInvalidExtractors = errors.New("invalid extractor concurrency: must be positive")

	// ErrInvalidJitter is returned when a jitter interval has its minimum
	// above its maximum or a negative bound.
	ErrInvalidJitter = errors.New("invalid jitter interval: min must be non-negative and not exceed max")

	// ErrInvalidBaseURL is returned when the base listing URL is empty or
	// not an absolute URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrInvalidSource is returned when a configured source has no name or a
	// non-positive remote ID.
	ErrInvalidSource = errors.New("invalid source: name must be non-empty and remote ID positive")
)
