// Package model defines the core data structures shared across rmpscrape.
//
// The central types are:
//
//   - Record: a single professor rating row extracted from a listing page
//   - SourceResult: the outcome of scraping one source, including partial
//     results, warnings, and timing information
//
// Model types carry no scraping behavior beyond parsing and serialization.
// Scraping logic lives in the scraper package and output formatting in the
// report package, which keeps this package free of heavy dependencies and
// usable from any layer.
package model
