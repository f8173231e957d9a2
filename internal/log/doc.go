// Package log provides the application's logging setup, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Configurable log levels with verbose mode support
//   - A collecting handler that records warnings for the run summary
//   - Consistent log formatting across the application
//
// # Warning Collection
//
// Scrape sessions run concurrently and emit warnings as they encounter
// malformed panels or hit their pagination budget. The CollectorHandler
// captures every record at Warn level or above so the end-of-run summary
// can list them, without the commands having to thread a warning channel
// through every layer.
//
// # Usage
//
//	collector := log.NewCollector()
//	logger := log.NewLogger(os.Stderr, verbose, collector)
//
//	logger.Warn("skipped malformed panel", "source", "Acadia University")
//
//	for _, w := range collector.Warnings() {
//	    fmt.Println(w)
//	}
package log
