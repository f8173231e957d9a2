package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/config"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// scrapeSource runs one complete session for a source: staggered startup,
// navigation, pagination, and extraction. It returns a result even when the
// listing was truncated by the budget; only unrecoverable failures return an
// error, and the caller wraps that error with the source name.
func (s *Scraper) scrapeSource(ctx context.Context, src config.Source) (*model.SourceResult, error) {
	result := model.NewSourceResult(src.Name, src.RemoteID)
	startTime := time.Now()

	// Stagger session starts so concurrent sessions don't hammer the site
	// at the same instant.
	if err := sleepJitter(ctx, s.cfg.StartupDelayMin, s.cfg.StartupDelayMax); err != nil {
		return nil, err
	}

	page, err := s.factory.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("start browser session: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.logger.Warn("failed to close page",
				"source", src.Name,
				"error", cerr,
			)
		}
	}()

	url := src.URL(s.cfg.BaseURL)
	s.logger.Info("session started",
		"source", src.Name,
		"url", url,
	)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}

	records, truncated, err := s.paginate(ctx, page, result)
	if err != nil {
		return nil, err
	}

	result.Records = records
	result.Truncated = truncated

	if truncated {
		const msg = "pagination budget exceeded, results are truncated"
		result.AddWarning(msg)
		s.logger.Warn(msg,
			"source", src.Name,
			"records", len(records),
			"budget", s.cfg.PaginationBudget,
		)
	}

	if result.Empty() {
		const msg = "no records found"
		result.AddWarning(msg)
		s.logger.Warn(msg,
			"source", src.Name,
			"url", url,
		)
	}

	result.Elapsed = time.Since(startTime)

	s.logger.Info("session finished",
		"source", src.Name,
		"records", len(result.Records),
		"truncated", result.Truncated,
		"elapsed", result.Elapsed,
	)

	return result, nil
}
