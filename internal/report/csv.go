package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// Columns returns the CSV header in output order. The would-take-again
// column is nullable: records without data leave the cell empty.
func Columns() []string {
	return []string{"Name", "Rating", "Would Take Again (%)", "Difficulty", "Department"}
}

// CSVWriter outputs one source's records as CSV.
// The header row is always written, so an empty source still produces a
// well-formed file that downstream tooling can load.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result's records in CSV format.
func (w *CSVWriter) Write(result *model.SourceResult) (int, error) {
	counter := &countingWriter{w: w.output}
	enc := csv.NewWriter(counter)

	if err := enc.Write(Columns()); err != nil {
		return counter.n, err
	}

	for _, rec := range result.Records {
		row := []string{
			rec.Name,
			formatFloat(rec.Rating),
			formatPercent(rec.WouldTakeAgainPct),
			formatFloat(rec.Difficulty),
			rec.Department,
		}
		if err := enc.Write(row); err != nil {
			return counter.n, err
		}
	}

	enc.Flush()
	return counter.n, enc.Error()
}

// formatFloat renders a rating without trailing zeros ("4.5", "3").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPercent renders the nullable percentage; no data means an empty cell.
func formatPercent(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
