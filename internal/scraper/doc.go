// Package scraper implements the scraping engine for professor-rating
// listings.
//
// # Architecture
//
// The Scraper type coordinates the whole run through two bounded worker
// pools built on errgroup:
//
//   - the session pool runs one goroutine per source, limited to
//     Config.MaxSessions concurrent browser sessions
//   - within each session, the extraction pool reads record panels with
//     Config.MaxExtractors concurrent workers sharing the session's page
//
// Each session navigates to its listing, extracts the initially visible
// panels, then drives the "Show More" control until the listing is exhausted
// or the pagination budget expires. Every activation attempt yields one of
// three outcomes: continue (more panels revealed), exhausted (the control
// never appeared within the wait timeout), or budget exceeded (partial
// results, flagged truncated).
//
// # Obstruction handling
//
// Listing sites drop consent banners and promo overlays on top of the
// "Show More" control. A click intercepted by such an overlay surfaces as a
// browser.ObstructionError carrying the overlay's class attribute; the
// session hides the overlay and retries in a loop bounded by the pagination
// deadline. An overlay that cannot be located or hidden is fatal for the
// session.
//
// # Panel lifecycle
//
// Extracted panels are detached from the DOM on every exit path, success or
// failure. This keeps the page's DOM from growing without bound as
// pagination reveals thousands of panels, and it means each extraction pass
// only ever sees panels revealed since the previous pass.
package scraper
