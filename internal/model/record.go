package model

import (
	"fmt"
	"strconv"
	"strings"
)

// NoDataSentinel is the text the listing pages show in place of a
// would-take-again percentage when too few students have answered.
const NoDataSentinel = "N/A"

// Record is a single professor rating row extracted from a listing page.
//
// WouldTakeAgainPct is a pointer because the listing legitimately omits the
// value for professors with too few responses. A nil pointer means "no data",
// which serializes to an empty CSV cell and a JSON null. Zero is a real value
// (nobody would take the professor again) and must stay distinguishable.
type Record struct {
	// Name is the professor's full name as displayed on the listing.
	Name string `json:"name"`

	// Rating is the overall quality rating, typically 0.0 to 5.0.
	Rating float64 `json:"rating"`

	// WouldTakeAgainPct is the percentage of students who would take the
	// professor again. Nil when the listing shows the no-data sentinel.
	WouldTakeAgainPct *int64 `json:"wouldTakeAgainPct"`

	// Difficulty is the level-of-difficulty rating, typically 0.0 to 5.0.
	Difficulty float64 `json:"difficulty"`

	// Department is the department name as displayed on the listing.
	Department string `json:"department"`
}

// ParsePercent parses a would-take-again cell into its nullable value.
// Accepted inputs are the no-data sentinel ("N/A"), which yields nil, and a
// non-negative integer followed by a percent sign ("0%", "37%", "100%").
// Anything else is a parse error and the surrounding record should be
// treated as malformed.
func ParsePercent(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == NoDataSentinel {
		return nil, nil
	}

	digits, ok := strings.CutSuffix(s, "%")
	if !ok {
		return nil, fmt.Errorf("percent value %q: missing %% suffix", s)
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("percent value %q: %w", s, err)
	}
	if v < 0 {
		return nil, fmt.Errorf("percent value %q: negative", s)
	}

	return &v, nil
}

// ParseRating parses a rating or difficulty cell into a float.
// The listing renders these as plain decimal numbers ("4.3", "5").
func ParseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("rating value %q: %w", s, err)
	}
	return v, nil
}
