package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const dateOnlyLayout = "2006-01-02"

// ParseDate coerces a client date value: an RFC 3339 timestamp, a bare
// YYYY-MM-DD date, or epoch milliseconds. dateOnly reports the second form.
func ParseDate(raw string) (t time.Time, dateOnly bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, false
	}
	if parsed, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return parsed, true, true
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), false, true
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), false, true
	}
	return time.Time{}, false, false
}

// Collector accumulates issues from hand-rolled checks such as query
// parameter coercion.
type Collector struct {
	issues []Issue
}

func (c *Collector) Add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// Merge folds the issues of a validation error into c and reports whether
// err was one. Other errors are left to the caller.
func (c *Collector) Merge(err error) bool {
	var verr *Error
	if !errors.As(err, &verr) {
		return false
	}
	c.issues = append(c.issues, verr.Issues...)
	return true
}

// Err returns nil when nothing was collected.
func (c *Collector) Err() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &Error{Issues: c.issues}
}

// Int coerces raw into an integer within [lo, hi]; an empty raw yields def.
// A hi of zero means unbounded.
func (c *Collector) Int(field, raw string, def, lo, hi int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.Add(field, MsgExpectedNumber)
		return def
	}
	if n < lo {
		c.Add(field, MinNumber(lo))
		return def
	}
	if hi > 0 && n > hi {
		c.Add(field, MaxNumber(hi))
		return def
	}
	return n
}

// Date coerces raw into a time; an empty raw yields nil. A bare date used as
// an upper bound is moved to the last instant of that day.
func (c *Collector) Date(field, raw string, upperBound bool) *time.Time {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	t, dateOnly, ok := ParseDate(raw)
	if !ok {
		c.Add(field, MsgInvalidDate)
		return nil
	}
	if dateOnly && upperBound {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
