package browser

import (
	"context"
	"time"
)

// Page is the page access surface the scraper operates against.
// Implementations must be safe for use by the concurrent extractors of a
// single session; they are never shared across sessions.
//
// Design decision: We define our own narrow interfaces rather than exposing
// rod types because the scraping logic only needs six operations, and the
// indirection lets tests drive the full pagination and extraction paths
// without a browser process.
type Page interface {
	// Navigate loads the given URL and waits for the load event.
	Navigate(url string) error

	// Await waits up to timeout for the first element matching the XPath
	// expression. It returns ErrElementTimeout when the wait expires.
	Await(xpath string, timeout time.Duration) (Element, error)

	// AwaitAll returns all elements currently matching the XPath expression.
	// An empty result is not an error.
	AwaitAll(xpath string) ([]Element, error)

	// Close releases the page and every resource backing it.
	Close() error
}

// Element is a handle to a live DOM element.
type Element interface {
	// Text returns the element's visible text content.
	Text() (string, error)

	// First returns the first descendant matching the relative XPath
	// expression.
	First(xpath string) (Element, error)

	// All returns all descendants matching the relative XPath expression.
	All(xpath string) ([]Element, error)

	// Click performs a left click. When the element is covered by an
	// overlay, Click returns an ObstructionError identifying the overlay.
	Click() error

	// Hide makes the element invisible without removing it, so elements
	// beneath it become clickable again.
	Hide() error

	// Detach removes the element from the DOM and releases its handle.
	// Extracted record panels are detached immediately to keep the DOM,
	// and the browser's memory, from growing with the listing.
	Detach() error
}

// Factory creates pages. Each session asks the factory for one page and
// closes it when the session ends.
type Factory interface {
	// NewPage starts a browser session and returns its page.
	// The caller owns the page and must Close it.
	NewPage(ctx context.Context) (Page, error)
}
