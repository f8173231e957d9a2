package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/browser"
	"github.com/Luis-Varona/rmp-scraping-with-jags-models/internal/model"
)

// The fakes below implement the browser package's page access surface so
// the pagination, obstruction, and extraction paths can run without a
// browser process. A fakePage models a listing as batches of panels: one
// batch is visible initially and each successful "Show More" click reveals
// the next.

// fakeText is a leaf element that only carries text.
type fakeText struct {
	text string
	err  error
}

func (f *fakeText) Text() (string, error)                        { return f.text, f.err }
func (f *fakeText) First(string) (browser.Element, error)        { return nil, fmt.Errorf("leaf element") }
func (f *fakeText) All(string) ([]browser.Element, error)        { return nil, fmt.Errorf("leaf element") }
func (f *fakeText) Click() error                                 { return fmt.Errorf("leaf element") }
func (f *fakeText) Hide() error                                  { return fmt.Errorf("leaf element") }
func (f *fakeText) Detach() error                                { return fmt.Errorf("leaf element") }

// fakePanel is a record panel. Field selectors resolve through the fields
// map; the feedback selector returns the feedback slice in order.
type fakePanel struct {
	mu       sync.Mutex
	fields   map[string]string
	feedback []string
	detached bool
}

// newFakePanel builds a well-formed panel in the shape the extractor
// expects: name, rating, and department cells plus the two feedback cells
// (would-take-again, difficulty).
func newFakePanel(name, rating, department, takeAgain, difficulty string) *fakePanel {
	return &fakePanel{
		fields: map[string]string{
			nameXPath:       name,
			ratingXPath:     rating,
			departmentXPath: department,
		},
		feedback: []string{takeAgain, difficulty},
	}
}

func (p *fakePanel) Text() (string, error) { return "", nil }

func (p *fakePanel) First(xpath string) (browser.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text, ok := p.fields[xpath]
	if !ok {
		return nil, fmt.Errorf("no element matching %s", xpath)
	}
	return &fakeText{text: text}, nil
}

func (p *fakePanel) All(xpath string) ([]browser.Element, error) {
	if xpath != feedbackXPath {
		return nil, fmt.Errorf("no elements matching %s", xpath)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]browser.Element, len(p.feedback))
	for i, text := range p.feedback {
		out[i] = &fakeText{text: text}
	}
	return out, nil
}

func (p *fakePanel) Click() error { return fmt.Errorf("panels are not clicked") }
func (p *fakePanel) Hide() error  { return fmt.Errorf("panels are not hidden") }

func (p *fakePanel) Detach() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.detached = true
	return nil
}

func (p *fakePanel) isDetached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detached
}

// fakeShowMore is the pagination control of a fakePage.
type fakeShowMore struct {
	page *fakePage
}

func (b *fakeShowMore) Text() (string, error)                 { return "Show More", nil }
func (b *fakeShowMore) First(string) (browser.Element, error) { return nil, fmt.Errorf("leaf element") }
func (b *fakeShowMore) All(string) ([]browser.Element, error) { return nil, fmt.Errorf("leaf element") }
func (b *fakeShowMore) Hide() error                           { return fmt.Errorf("control is not hidden") }
func (b *fakeShowMore) Detach() error                         { return fmt.Errorf("control is not detached") }

func (b *fakeShowMore) Click() error {
	b.page.mu.Lock()
	defer b.page.mu.Unlock()

	if b.page.pendingObstructions > 0 {
		return &browser.ObstructionError{BlockingClass: b.page.overlayClass}
	}

	if b.page.revealed < len(b.page.batches) {
		b.page.revealed++
	}
	return nil
}

// fakeOverlay is the obstructing element; hiding it consumes one pending
// obstruction.
type fakeOverlay struct {
	page *fakePage
}

func (o *fakeOverlay) Text() (string, error)                 { return "", nil }
func (o *fakeOverlay) First(string) (browser.Element, error) { return nil, fmt.Errorf("leaf element") }
func (o *fakeOverlay) All(string) ([]browser.Element, error) { return nil, fmt.Errorf("leaf element") }
func (o *fakeOverlay) Click() error                          { return fmt.Errorf("overlay is not clicked") }
func (o *fakeOverlay) Detach() error                         { return fmt.Errorf("overlay is not detached") }

func (o *fakeOverlay) Hide() error {
	o.page.mu.Lock()
	defer o.page.mu.Unlock()
	if o.page.hideErr != nil {
		return o.page.hideErr
	}
	o.page.hidden++
	if o.page.pendingObstructions > 0 {
		o.page.pendingObstructions--
	}
	return nil
}

// fakePage models one listing page.
type fakePage struct {
	mu sync.Mutex

	// batches are the panels the listing reveals, one batch per successful
	// "Show More" click. batches[0] is visible after navigation.
	batches [][]*fakePanel

	// revealed is the number of batches currently visible.
	revealed int

	// pendingObstructions is the number of overlay interceptions remaining;
	// while positive, clicking "Show More" fails with an ObstructionError.
	pendingObstructions int

	// overlayClass is the class attribute reported by obstructed clicks.
	overlayClass string

	// overlayPresent controls whether the overlay can be located by class.
	overlayPresent bool

	// hideErr, when set, makes every overlay hide attempt fail.
	hideErr error

	// hidden counts successful overlay hides.
	hidden int

	navigated []string
	closed    bool
}

func newFakePage(batches ...[]*fakePanel) *fakePage {
	p := &fakePage{batches: batches}
	if len(batches) > 0 {
		p.revealed = 1
	}
	return p
}

func (p *fakePage) Navigate(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) Await(xpath string, _ time.Duration) (browser.Element, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if xpath == showMoreXPath {
		if p.revealed >= len(p.batches) && p.pendingObstructions == 0 {
			return nil, fmt.Errorf("locate %q: %w", xpath, browser.ErrElementTimeout)
		}
		return &fakeShowMore{page: p}, nil
	}

	if p.overlayPresent && xpath == classXPath(p.overlayClass) {
		return &fakeOverlay{page: p}, nil
	}

	return nil, fmt.Errorf("locate %q: %w", xpath, browser.ErrElementTimeout)
}

func (p *fakePage) AwaitAll(xpath string) ([]browser.Element, error) {
	if xpath != profCardXPath {
		return nil, fmt.Errorf("no elements matching %s", xpath)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var out []browser.Element
	for _, batch := range p.batches[:p.revealed] {
		for _, panel := range batch {
			if !panel.isDetached() {
				out = append(out, panel)
			}
		}
	}
	return out, nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePage) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// fakeFactory hands out pre-built pages keyed by URL-independent order, or
// a fixed error.
type fakeFactory struct {
	mu    sync.Mutex
	pages []*fakePage
	errs  []error
	calls int
}

func (f *fakeFactory) NewPage(context.Context) (browser.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return nil, fmt.Errorf("no page configured for session %d", i)
}

// collectSink records results in arrival order.
type collectSink struct {
	mu      sync.Mutex
	results []*model.SourceResult
	err     error
}

func (c *collectSink) Write(_ context.Context, result *model.SourceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.results = append(c.results, result)
	return nil
}

func (c *collectSink) all() []*model.SourceResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.SourceResult(nil), c.results...)
}
