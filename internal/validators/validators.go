// Package validators holds stateless format and business-rule checks for single
// values and whole records. Inputs are raw strings; malformed input yields false,
// never an error.
package validators

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStripPattern = regexp.MustCompile(`[\s\-().]`)
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s\-'.]{2,50}$`)

	postalPatterns = map[string]*regexp.Regexp{
		"US": regexp.MustCompile(`^\d{5}(-\d{4})?$`),
		"CA": regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] \d[A-Za-z]\d$`),
		"UK": regexp.MustCompile(`^[A-Za-z]{1,2}\d[A-Za-z\d]? \d[A-Za-z]{2}$`),
	}

	dateLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"01-02-2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"02 Jan 2006",
		"Mon, 02 Jan 2006 15:04:05 MST",
	}
)

// ValidateEmail checks local@domain.tld shape
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidatePhone strips separators and checks for 7 to 16 digits with an
// optional leading plus and no leading zero
func ValidatePhone(s string) bool {
	clean := phoneStripPattern.ReplaceAllString(s, "")
	return phonePattern.MatchString(clean) && len(clean) >= 7
}

// ValidateDate accepts common date layouts with a year strictly between 1900 and 2100
func ValidateDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year() > 1900 && t.Year() < 2100
		}
	}
	return false
}

// ValidateURL requires an absolute URL with a scheme and a host
func ValidateURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// ValidatePostalCode checks US, CA or UK formats. Unknown countries use the US pattern.
func ValidatePostalCode(s, country string) bool {
	pattern, ok := postalPatterns[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		pattern = postalPatterns["US"]
	}
	return pattern.MatchString(strings.TrimSpace(s))
}

// ValidateName accepts 2 to 50 letters, spaces, hyphens, apostrophes and dots
func ValidateName(s string) bool {
	return namePattern.MatchString(strings.TrimSpace(s))
}

// ValidateNumeric parses the whole trimmed value as a float. Thousands separators
// and currency symbols make a value non-numeric; callers must pre-clean them.
// A nil bound is not checked.
func ValidateNumeric(s string, min, max *float64) bool {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false
	}
	if min != nil && n < *min {
		return false
	}
	if max != nil && n > *max {
		return false
	}
	return true
}

// Bound is a helper for ValidateNumeric bounds
func Bound(v float64) *float64 {
	return &v
}

// WebsiteHost returns the lower-cased host of a URL with a leading "www." removed
func WebsiteHost(website string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(website))
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."), true
}
