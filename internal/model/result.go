package model

import "time"

// SourceResult is the outcome of scraping one source.
// It is produced by the session orchestrator and consumed by the report
// writers and the run-history database. A result can be partial: when the
// pagination budget expires, Truncated is true and Records holds everything
// collected up to that point.
type SourceResult struct {
	// Source is the human-readable source name (e.g. "Acadia University").
	Source string `json:"source"`

	// RemoteID is the numeric identifier of the source on the remote site.
	RemoteID int `json:"remoteId"`

	// Records holds all successfully extracted rating rows.
	Records []Record `json:"records"`

	// Truncated is true when the pagination budget expired before the
	// listing was exhausted. Records then holds a partial snapshot.
	Truncated bool `json:"truncated"`

	// Warnings holds non-fatal problems encountered during the session,
	// such as skipped malformed panels or an empty listing.
	Warnings []string `json:"warnings,omitempty"`

	// DateScraped is when the session started.
	DateScraped time.Time `json:"dateScraped"`

	// Elapsed is the total session duration including pagination and
	// extraction.
	Elapsed time.Duration `json:"elapsed"`
}

// NewSourceResult creates an empty result for the given source,
// stamped with the current time.
func NewSourceResult(source string, remoteID int) *SourceResult {
	return &SourceResult{
		Source:      source,
		RemoteID:    remoteID,
		Records:     make([]Record, 0),
		Warnings:    make([]string, 0),
		DateScraped: time.Now(),
	}
}

// AddWarning appends a non-fatal problem description to the result.
func (r *SourceResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Empty reports whether the session produced no records at all.
func (r *SourceResult) Empty() bool {
	return len(r.Records) == 0
}
