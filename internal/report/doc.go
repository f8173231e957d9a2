// Package report provides output formatting for scrape results.
//
// Two formats are supported:
//
//   - CSV: one file per source, written by CSVWriter. This is the primary
//     data product and is always written, header included, even when a
//     source yielded no records.
//   - Markdown: an optional end-of-run summary written by MarkdownWriter,
//     with a per-source table, a records-per-source pie chart, and an alert
//     reflecting truncation and warnings.
//
// Writers output to an io.Writer; file handling and destinations are the
// caller's concern.
package report
