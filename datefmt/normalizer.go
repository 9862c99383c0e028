// Package datefmt normalizes the date strings returned by the Alma API
// into a single display representation.
//
// Alma emits dates in several shapes depending on the endpoint: compact
// 8-digit dates, slash-separated dates with and without month names,
// ISO dates, and full ISO timestamps. Date-only values are sometimes
// suffixed with a stray "Z" zone marker (e.g. "2012-07-13Z"), which is
// stripped before classification.
package datefmt

import (
	"fmt"
	"regexp"
	"time"
)

// Default display layouts, Go reference-time notation.
const (
	DefaultDateLayout     = "01/02/2006"
	DefaultDateTimeLayout = "01/02/2006 15:04"
)

// InvalidDateError indicates a date string matched none of the
// recognized shapes.
type InvalidDateError struct {
	Value string
}

// Error implements the error interface
func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

// pattern pairs a matcher with the parse layout used on a match.
// Patterns are evaluated in order and the first match wins, so
// ambiguous inputs always resolve the same way.
type pattern struct {
	match   *regexp.Regexp
	layout  string
	hasTime bool
}

var patterns = []pattern{
	{regexp.MustCompile(`^[0-9]{8}$`), "20060102", false},
	{regexp.MustCompile(`^[0-9]+/[A-Za-z]{3}/[0-9]{4}$`), "2/Jan/2006", false},
	{regexp.MustCompile(`^[0-9]+/[0-9]+/[0-9]{4}$`), "2/1/2006", false},
	{regexp.MustCompile(`^[0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4}$`), "2/1/06", false},
	{regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`), "2006-01-02", false},
	{regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}Z$`), "2006-01-02T15:04:05Z", true},
}

// Dates like "2012-07-13Z" carry a zone marker with no time component.
var bareDateZone = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}Z$`)

// Normalizer converts recognized date strings to display form.
type Normalizer struct {
	dateLayout     string
	dateTimeLayout string
}

// New creates a Normalizer with the default display layouts.
func New() *Normalizer {
	return &Normalizer{
		dateLayout:     DefaultDateLayout,
		dateTimeLayout: DefaultDateTimeLayout,
	}
}

// NewWithLayouts creates a Normalizer with custom display layouts.
func NewWithLayouts(dateLayout, dateTimeLayout string) *Normalizer {
	return &Normalizer{
		dateLayout:     dateLayout,
		dateTimeLayout: dateTimeLayout,
	}
}

// Normalize classifies value against the recognized shapes and returns
// it formatted for display. Time-of-day is included only when withTime
// is set and the input carried a time component. An empty value yields
// an empty string.
func (n *Normalizer) Normalize(value string, withTime bool) (string, error) {
	if value == "" {
		return "", nil
	}

	if bareDateZone.MatchString(value) {
		value = value[:len(value)-1]
	}

	for _, p := range patterns {
		if !p.match.MatchString(value) {
			continue
		}

		parsed, err := time.Parse(p.layout, value)
		if err != nil {
			return "", &InvalidDateError{Value: value}
		}

		if p.hasTime && withTime {
			return parsed.Format(n.dateTimeLayout), nil
		}
		return parsed.Format(n.dateLayout), nil
	}

	return "", &InvalidDateError{Value: value}
}

// Parse classifies value and returns it as a time.Time without
// formatting. Used where callers need to compare dates rather than
// display them.
func (n *Normalizer) Parse(value string) (time.Time, error) {
	if bareDateZone.MatchString(value) {
		value = value[:len(value)-1]
	}

	for _, p := range patterns {
		if p.match.MatchString(value) {
			parsed, err := time.Parse(p.layout, value)
			if err != nil {
				return time.Time{}, &InvalidDateError{Value: value}
			}
			return parsed, nil
		}
	}

	return time.Time{}, &InvalidDateError{Value: value}
}
