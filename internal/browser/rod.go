package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFactory creates rod-backed pages. Each NewPage call launches its own
// browser process, so concurrent sessions stay fully isolated: separate
// cookies, separate caches, separate crash domains.
type RodFactory struct {
	// binPath is the explicit browser binary path. Empty means let the
	// launcher resolve (and if needed download) its managed browser.
	binPath string

	// headless controls whether launched browsers show a window.
	headless bool
}

// NewRodFactory creates a factory for the given binary path and headless
// setting. Call CheckBinary before scraping when binPath is set.
func NewRodFactory(binPath string, headless bool) *RodFactory {
	return &RodFactory{
		binPath:  binPath,
		headless: headless,
	}
}

// NewPage launches a browser and opens a blank page in it.
// The returned page must be closed by the caller; closing it also shuts the
// browser process down.
func (f *RodFactory) NewPage(ctx context.Context) (Page, error) {
	l := launcher.New().Headless(f.headless)
	if f.binPath != "" {
		l = l.Bin(f.binPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close() //nolint:errcheck // Best effort cleanup
		l.Cleanup()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &rodPage{page: page, browser: b, launcher: l}, nil
}

// rodPage adapts *rod.Page to the Page interface and owns the browser
// process behind it.
type rodPage struct {
	page     *rod.Page
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Navigate loads the URL and waits for the load event.
func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := p.page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s to load: %w", url, err)
	}
	return nil
}

// Await waits up to timeout for the first element matching the XPath
// expression. A wait that expires is reported as ErrElementTimeout so the
// pagination driver can distinguish "element absent" from real failures.
func (p *rodPage) Await(xpath string, timeout time.Duration) (Element, error) {
	el, err := p.page.Timeout(timeout).ElementX(xpath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("locate %q: %w", xpath, ErrElementTimeout)
		}
		return nil, fmt.Errorf("locate %q: %w", xpath, err)
	}

	// Drop the lookup deadline so later operations on the element are not
	// bounded by it.
	return &rodElement{el: el.CancelTimeout()}, nil
}

// AwaitAll returns all elements currently matching the XPath expression.
func (p *rodPage) AwaitAll(xpath string) ([]Element, error) {
	els, err := p.page.ElementsX(xpath)
	if err != nil {
		return nil, fmt.Errorf("locate all %q: %w", xpath, err)
	}

	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

// Close closes the page, shuts down the browser process, and removes the
// launcher's temporary profile directory.
func (p *rodPage) Close() error {
	pageErr := p.page.Close()
	browserErr := p.browser.Close()
	p.launcher.Cleanup()

	if pageErr != nil {
		return fmt.Errorf("close page: %w", pageErr)
	}
	if browserErr != nil {
		return fmt.Errorf("close browser: %w", browserErr)
	}
	return nil
}

// rodElement adapts *rod.Element to the Element interface.
type rodElement struct {
	el *rod.Element
}

// Text returns the element's visible text content.
func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

// First returns the first descendant matching the relative XPath expression.
func (e *rodElement) First(xpath string) (Element, error) {
	el, err := e.el.ElementX(xpath)
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", xpath, err)
	}
	return &rodElement{el: el}, nil
}

// All returns all descendants matching the relative XPath expression.
func (e *rodElement) All(xpath string) ([]Element, error) {
	els, err := e.el.ElementsX(xpath)
	if err != nil {
		return nil, fmt.Errorf("locate all %q: %w", xpath, err)
	}

	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

// Click performs a left click after probing interactability.
// When the probe reports the element as covered, the covering element's
// class attribute is wrapped into an ObstructionError so the caller can
// resolve the overlay and retry. Covered elements without a readable class
// attribute surface the original rod error, which the session treats as
// fatal because there is nothing actionable to hide.
func (e *rodElement) Click() error {
	if _, err := e.el.Interactable(); err != nil {
		var covered *rod.CoveredError
		if errors.As(err, &covered) {
			cls, attrErr := covered.Attribute("class")
			if attrErr == nil && cls != nil && *cls != "" {
				return &ObstructionError{BlockingClass: *cls}
			}
		}
		return err
	}
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

// Hide makes the element invisible without removing it from the DOM.
func (e *rodElement) Hide() error {
	_, err := e.el.Eval(`() => { this.style.display = "none"; }`)
	if err != nil {
		return fmt.Errorf("hide element: %w", err)
	}
	return nil
}

// Detach removes the element from the DOM and releases its handle.
func (e *rodElement) Detach() error {
	return e.el.Remove()
}
