package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/browser"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// activation is the outcome of one "Show More" activation attempt.
// Modeling the three outcomes explicitly keeps the pagination loop free of
// sentinel-error plumbing: exhaustion and budget expiry are normal results,
// not failures.
type activation int

const (
	// activationContinue means the control was clicked and more panels
	// should now be in the DOM.
	activationContinue activation = iota

	// activationExhausted means the control did not appear within the wait
	// timeout. The listing has no more pages.
	activationExhausted

	// activationBudget means the pagination deadline passed while trying to
	// activate the control. Whatever was collected so far is kept and the
	// result is flagged truncated.
	activationBudget
)

// paginate drives the listing to completion or to the pagination deadline.
// It extracts the initially visible panels, then alternates between
// activating "Show More" and extracting the newly revealed panels. Because
// extraction detaches panels from the DOM, each pass only sees panels
// revealed since the previous one.
//
// The boolean return reports truncation: true means the deadline expired
// before the listing was exhausted.
func (s *Scraper) paginate(ctx context.Context, page browser.Page, result *model.SourceResult) ([]model.Record, bool, error) {
	deadline := time.Now().Add(s.cfg.PaginationBudget)

	records, err := s.extractVisible(ctx, page, result)
	if err != nil {
		return nil, false, err
	}

	for {
		// The deadline check leads the loop so a zero budget still yields
		// the initial panels, flagged truncated.
		if !time.Now().Before(deadline) {
			return records, true, nil
		}

		step, err := s.activateShowMore(ctx, page, deadline)
		if err != nil {
			return nil, false, err
		}

		switch step {
		case activationExhausted:
			return records, false, nil
		case activationBudget:
			return records, true, nil
		case activationContinue:
			batch, err := s.extractVisible(ctx, page, result)
			if err != nil {
				return nil, false, err
			}
			records = append(records, batch...)
		}
	}
}

// activateShowMore attempts one activation of the "Show More" control.
//
// A control that never becomes present within the wait timeout is the
// normal end-of-listing signal and maps to activationExhausted. A click
// intercepted by an overlay enters the obstruction loop: hide the reported
// overlay, retry, and keep going until the click lands or the pagination
// deadline passes. The loop is bounded by the deadline rather than a retry
// count because sites stack multiple overlays and each resolution is cheap.
func (s *Scraper) activateShowMore(ctx context.Context, page browser.Page, deadline time.Time) (activation, error) {
	// Human-like pause before reaching for the control.
	if err := sleepJitter(ctx, s.cfg.ClickDelayMin, s.cfg.ClickDelayMax); err != nil {
		return activationExhausted, err
	}

	el, err := page.Await(showMoreXPath, s.cfg.WaitTimeout)
	if err != nil {
		if errors.Is(err, browser.ErrElementTimeout) {
			return activationExhausted, nil
		}
		return activationExhausted, err
	}

	for {
		clickErr := el.Click()
		if clickErr == nil {
			return activationContinue, nil
		}

		var obstruction *browser.ObstructionError
		if !errors.As(clickErr, &obstruction) {
			// Not an overlay problem; nothing to resolve.
			return activationExhausted, clickErr
		}

		if !time.Now().Before(deadline) {
			s.logger.Warn("pagination deadline passed while resolving obstruction",
				"class", obstruction.BlockingClass,
			)
			return activationBudget, nil
		}

		if err := s.hideObstruction(page, obstruction); err != nil {
			return activationExhausted, err
		}

		s.logger.Debug("obstruction cleared, retrying click",
			"class", obstruction.BlockingClass,
		)
	}
}

// hideObstruction locates the overlay reported by an intercepted click and
// hides it. Failure here is fatal for the session: an overlay that cannot
// be hidden would intercept every retry.
func (s *Scraper) hideObstruction(page browser.Page, obstruction *browser.ObstructionError) error {
	overlay, err := page.Await(classXPath(obstruction.BlockingClass), s.cfg.WaitTimeout)
	if err != nil {
		return fmt.Errorf("%w: locate overlay with class %q: %v",
			ErrObstructionUnresolved, obstruction.BlockingClass, err)
	}

	if err := overlay.Hide(); err != nil {
		return fmt.Errorf("%w: hide overlay with class %q: %v",
			ErrObstructionUnresolved, obstruction.BlockingClass, err)
	}

	return nil
}
