package contract

import (
	"strings"
	"time"
)

// Date is a calendar date in ISO YYYY-MM-DD form. The empty string means unset.
// Keeping dates as strings keeps the generative output schema flat and makes
// field-level merging a plain emptiness check.
type Date string

// dateLayouts are tried in order when parsing free-text dates. The month-year
// form is handled separately because it needs a synthetic day.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"1/2/2006",
	"2006-01-02",
	"2 January 2006",
}

// ParseDate parses a free-text date using the ordered layout list and returns
// it normalized to YYYY-MM-DD. The second return is false when no layout matched.
func ParseDate(raw string) (Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date(t.Format("2006-01-02")), true
		}
	}

	// "January 2006" style, day defaults to the first.
	if t, err := time.Parse("2 January 2006", "1 "+raw); err == nil {
		return Date(t.Format("2006-01-02")), true
	}

	return "", false
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Time converts the date to a time.Time. The second return is false when the
// date is unset or not valid ISO form.
func (d Date) Time() (time.Time, bool) {
	if d.IsZero() {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
