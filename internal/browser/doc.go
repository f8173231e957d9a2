// Package browser provides the page access surface used by the scraper.
//
// The Page and Element interfaces are the only way the scraping logic
// touches a live browser. The production implementation drives a headless
// Chromium instance through go-rod; tests substitute in-memory fakes.
//
// # Error translation
//
// The rod-backed implementation translates browser-level failures into the
// small error vocabulary the scraper reasons about:
//
//   - a bounded element lookup that expires becomes ErrElementTimeout,
//     which the pagination driver reads as "listing exhausted"
//   - a click intercepted by an overlay becomes an ObstructionError carrying
//     the covering element's class attribute, which the obstruction resolver
//     uses to locate and hide the overlay
//
// Anything else surfaces unchanged and is treated as fatal for the session.
package browser
