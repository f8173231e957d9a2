package scraper

import "errors"

// ErrObstructionUnresolved is returned when a click was intercepted by an
// overlay that could not be located or hidden. The session treats this as
// fatal: retrying a click that cannot become interactable would spin until
// the budget expires without any chance of progress.
var ErrObstructionUnresolved = errors.New("could not resolve click obstruction")
