package scraper

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/browser"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// extractVisible extracts every record panel currently in the DOM, using up
// to Config.MaxExtractors concurrent workers. Malformed panels are skipped
// with a warning rather than failing the batch; a listing with one broken
// card should still yield the other several hundred.
//
// Results are collected into indexed slots so the merged order matches the
// panel order on the page regardless of which worker finishes first.
func (s *Scraper) extractVisible(ctx context.Context, page browser.Page, result *model.SourceResult) ([]model.Record, error) {
	panels, err := page.AwaitAll(profCardXPath)
	if err != nil {
		return nil, err
	}
	if len(panels) == 0 {
		return nil, nil
	}

	extracted := make([]*model.Record, len(panels))
	var warnMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxExtractors)

	for i, panel := range panels {
		i, panel := i, panel
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			rec, err := extractRecord(panel)
			if err != nil {
				s.logger.Warn("skipping malformed record panel",
					"source", result.Source,
					"error", err,
				)
				warnMu.Lock()
				result.AddWarning(fmt.Sprintf("skipped malformed panel: %v", err))
				warnMu.Unlock()
				return nil
			}

			extracted[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(extracted))
	for _, rec := range extracted {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, nil
}

// extractRecord reads one panel's fields into a Record.
// The panel is detached from the DOM on every path, success or failure, so
// the page's memory footprint stays bounded as pagination reveals more
// panels and already-read panels are never extracted twice.
func extractRecord(panel browser.Element) (rec model.Record, err error) {
	defer func() {
		if derr := panel.Detach(); derr != nil && err == nil {
			err = fmt.Errorf("detach panel: %w", derr)
		}
	}()

	rec.Name, err = childText(panel, nameXPath)
	if err != nil {
		return rec, fmt.Errorf("name: %w", err)
	}

	ratingText, err := childText(panel, ratingXPath)
	if err != nil {
		return rec, fmt.Errorf("rating: %w", err)
	}
	rec.Rating, err = model.ParseRating(ratingText)
	if err != nil {
		return rec, fmt.Errorf("rating: %w", err)
	}

	rec.Department, err = childText(panel, departmentXPath)
	if err != nil {
		return rec, fmt.Errorf("department: %w", err)
	}

	// The would-take-again and difficulty cells share a class and appear in
	// that order.
	feedback, err := panel.All(feedbackXPath)
	if err != nil {
		return rec, fmt.Errorf("feedback cells: %w", err)
	}
	if len(feedback) < 2 {
		return rec, fmt.Errorf("feedback cells: expected 2, found %d", len(feedback))
	}

	takeAgainText, err := feedback[0].Text()
	if err != nil {
		return rec, fmt.Errorf("would-take-again: %w", err)
	}
	rec.WouldTakeAgainPct, err = model.ParsePercent(takeAgainText)
	if err != nil {
		return rec, fmt.Errorf("would-take-again: %w", err)
	}

	difficultyText, err := feedback[1].Text()
	if err != nil {
		return rec, fmt.Errorf("difficulty: %w", err)
	}
	rec.Difficulty, err = model.ParseRating(difficultyText)
	if err != nil {
		return rec, fmt.Errorf("difficulty: %w", err)
	}

	return rec, nil
}

// childText returns the text of the first descendant matching the relative
// XPath expression.
func childText(panel browser.Element, xpath string) (string, error) {
	child, err := panel.First(xpath)
	if err != nil {
		return "", err
	}
	return child.Text()
}
