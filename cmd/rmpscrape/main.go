// Package main provides the entry point for the rmpscrape CLI.
//
// rmpscrape collects professor rating records from RateMyProfessors-style
// listing pages. It drives real browser sessions, pages through each
// school's listing, and writes one CSV file per school.
//
// Usage:
//
//	rmpscrape scrape
//	rmpscrape scrape -c mysources.yaml
//
// See --help for all available options.
package main

// main is the entry point for rmpscrape.
func main() {
	Execute()
}
