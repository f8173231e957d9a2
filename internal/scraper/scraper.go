package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/browser"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/config"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// Sink receives the result of each completed session.
// Implementations are called concurrently from session goroutines and must
// be safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, result *model.SourceResult) error
}

// Scraper coordinates concurrent scraping sessions across sources.
// Create one with New and start it with Run.
type Scraper struct {
	// cfg holds all tunables. It is passed in at construction and never
	// mutated; sessions read from it concurrently.
	cfg *config.Config

	// factory creates one page per session.
	factory browser.Factory

	// logger is used for structured logging throughout the run.
	logger *slog.Logger
}

// Option is a function that configures a Scraper.
// This follows the functional options pattern for clean API design.
type Option func(*Scraper)

// WithLogger sets a custom logger for the scraper.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// New creates a Scraper for the given configuration and page factory.
func New(cfg *config.Config, factory browser.Factory, opts ...Option) *Scraper {
	s := &Scraper{
		cfg:     cfg,
		factory: factory,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Run scrapes all sources concurrently and hands each completed result to
// the sink. At most Config.MaxSessions sessions run at once.
//
// Design decision: We use a plain errgroup.Group rather than
// errgroup.WithContext so that one failing session does not cancel its
// siblings. A source that fails (site change, browser crash) should not
// throw away the work of the sessions still running; Wait still propagates
// the first error so the process exit code reflects the failure.
func (s *Scraper) Run(ctx context.Context, sources []config.Source, sink Sink) error {
	s.logger.Info("starting scrape run",
		"sources", len(sources),
		"maxSessions", s.cfg.MaxSessions,
		"maxExtractors", s.cfg.MaxExtractors,
	)

	startTime := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.MaxSessions)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result, err := s.scrapeSource(ctx, src)
			if err != nil {
				s.logger.Error("session failed",
					"source", src.Name,
					"error", err,
				)
				return fmt.Errorf("scrape %s: %w", src.Name, err)
			}

			if err := sink.Write(ctx, result); err != nil {
				return fmt.Errorf("write results for %s: %w", src.Name, err)
			}

			return nil
		})
	}

	err := g.Wait()

	s.logger.Info("scrape run complete",
		"sources", len(sources),
		"elapsed", time.Since(startTime),
	)

	return err
}

// sleepJitter sleeps for a random duration in [min, max], or returns early
// with the context error when the context is cancelled. Randomized pacing
// keeps concurrent sessions from hitting the site in lockstep.
func sleepJitter(ctx context.Context, minDelay, maxDelay time.Duration) error {
	d := minDelay
	if span := maxDelay - minDelay; span > 0 {
		d += time.Duration(rand.Int63n(int64(span)))
	}
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
