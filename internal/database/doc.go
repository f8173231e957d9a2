// Package database provides SQLite-backed persistence for scrape runs.
//
// Every completed session is stored as one row in the runs table: the
// source identity, record count, truncation flag, duration, and the full
// result serialized as JSON. The history makes regressions visible; a
// source whose record count suddenly drops to zero usually means the site
// changed its markup, not that every professor vanished.
//
// The driver is modernc.org/sqlite, a pure-Go port, so the binary builds
// without cgo on every platform.
package database
