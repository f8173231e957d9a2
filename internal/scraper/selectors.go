package scraper

import (
	"fmt"
	"strings"
)

// XPath selectors for the professor listing pages. The site generates class
// names with a stable "Component__Element" prefix and a style-hash suffix,
// so everything matches on starts-with rather than the full class.
const (
	// showMoreXPath locates the "Show More" pagination control. The control
	// has no stable class or ID, so an absolute path is the only reliable
	// locator the page offers.
	showMoreXPath = `/html/body/div[1]/div/div/div[2]/main/div[1]/div[2]/button`

	// profCardXPath locates every record panel currently in the DOM.
	profCardXPath = `//a[starts-with(@class, "TeacherCard__StyledTeacherCard")]`

	// Relative selectors evaluated against a record panel.
	nameXPath       = `.//*[starts-with(@class, "CardName__StyledCardName")]`
	ratingXPath     = `.//*[starts-with(@class, "CardNumRating__CardNumRatingNumber")]`
	departmentXPath = `.//*[starts-with(@class, "CardSchool__Department")]`

	// feedbackXPath matches both the would-take-again cell and the
	// difficulty cell; they share a class and appear in that order.
	feedbackXPath = `.//*[starts-with(@class, "CardFeedback__CardFeedbackNumber")]`
)

// classXPath builds a selector matching any element whose class attribute
// equals the given value exactly. Used to locate an obstructing overlay from
// the class reported by browser.ObstructionError.
func classXPath(class string) string {
	return fmt.Sprintf(`//*[@class=%s]`, xpathLiteral(class))
}

// xpathLiteral quotes a string for embedding in an XPath expression.
// XPath 1.0 has no escape sequences inside string literals, so a value
// containing both quote characters must be assembled with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + p + `"`
	}
	return `concat(` + strings.Join(quoted, `, '"', `) + `)`
}
