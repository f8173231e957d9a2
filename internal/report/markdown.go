package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// MarkdownWriter outputs an end-of-run summary in Markdown format.
// This format is designed for documentation and sharing, not for data
// processing; the CSV files remain the canonical output.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteSummary outputs a run summary covering all source results.
func (w *MarkdownWriter) WriteSummary(results []*model.SourceResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, results)
	w.writeSourceTable(md, results)
	w.writePieChart(md, results)
	w.writeAlert(md, results)
	w.writeWarnings(md, results)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary title and run-level counts.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, results []*model.SourceResult) {
	md.H1("Scrape Summary")
	md.PlainText("")

	var total int
	for _, r := range results {
		total += len(r.Records)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run Date", time.Now().Format("2006-01-02 15:04:05 MST")},
			{"Sources", strconv.Itoa(len(results))},
			{"Total Records", strconv.Itoa(total)},
		},
	})
	md.PlainText("")
}

// writeSourceTable writes the per-source breakdown.
func (w *MarkdownWriter) writeSourceTable(md *markdown.Markdown, results []*model.SourceResult) {
	md.H2("Sources")
	md.PlainText("")

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.Source,
			strconv.Itoa(r.RemoteID),
			strconv.Itoa(len(r.Records)),
			statusText(r),
			r.Elapsed.Round(time.Second).String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Remote ID", "Records", "Status", "Elapsed"},
		Rows:   rows,
	})
	md.PlainText("")
}

// statusText returns the status cell for a source result.
func statusText(r *model.SourceResult) string {
	switch {
	case r.Truncated:
		return "⚠️ Truncated (partial results)"
	case r.Empty():
		return "⚠️ No records"
	case len(r.Warnings) > 0:
		return "✅ Complete (with warnings)"
	default:
		return "✅ Complete"
	}
}

// writePieChart writes a mermaid pie chart of records per source.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, results []*model.SourceResult) {
	var total int
	for _, r := range results {
		total += len(r.Records)
	}
	if total == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Records per Source"),
		piechart.WithShowData(true),
	)
	for _, r := range results {
		if len(r.Records) > 0 {
			chart.LabelAndIntValue(r.Source, uint64(len(r.Records)))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert reflecting the overall run health.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, results []*model.SourceResult) {
	var truncated, empty, warned int
	for _, r := range results {
		if r.Truncated {
			truncated++
		}
		if r.Empty() {
			empty++
		}
		if len(r.Warnings) > 0 {
			warned++
		}
	}

	switch {
	case truncated > 0:
		md.Warningf(
			"%d source(s) hit the pagination budget; their CSV files hold partial data.",
			truncated,
		)
	case empty > 0:
		md.Importantf(
			"%d source(s) returned no records. Check the selectors against the live site.",
			empty,
		)
	case warned > 0:
		md.Notef("%d source(s) completed with warnings.", warned)
	default:
		md.Tip("All sources completed cleanly.")
	}
	md.PlainText("")
}

// writeWarnings lists every warning grouped by source.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, results []*model.SourceResult) {
	var any bool
	for _, r := range results {
		if len(r.Warnings) > 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	for _, r := range results {
		if len(r.Warnings) == 0 {
			continue
		}
		md.Details(r.Source, "- "+strings.Join(r.Warnings, "\n- "))
	}
	md.PlainText("")
}
