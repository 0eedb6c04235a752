// File: services/timezone/normalizer.go
package timezone

import (
	"fmt"
	"strings"
	"time"
)

// maxDayAdvance bounds the EnsureFuture loop to roughly three years. Hitting
// it means the input date is garbage, not a recoverable runtime condition.
const maxDayAdvance = 1098

// ParseError reports a datetime string that could not be parsed as ISO-8601.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid ISO-8601 datetime: %q", e.Value)
}

// NormalizationError reports a fatal normalization fault, such as exceeding
// the day-advance ceiling. It is never converted into a structured result.
type NormalizationError struct {
	Message string
}

func (e *NormalizationError) Error() string {
	return e.Message
}

// Normalizer converts heterogeneous ISO-8601 input into timezone-consistent
// datetimes anchored to a single business timezone. It is constructed once
// with an explicit location so tests can inject any zone they like.
type Normalizer struct {
	loc *time.Location
}

// New builds a Normalizer for the named IANA timezone.
func New(name string) (*Normalizer, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown business timezone %q: %w", name, err)
	}
	return &Normalizer{loc: loc}, nil
}

// NewWithLocation builds a Normalizer around an already-loaded location.
func NewWithLocation(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Location returns the business timezone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// naiveLayouts are accepted for offset-less input. A naive timestamp is
// interpreted as business-local time by policy: both the calendar backend and
// the language model emit naive strings that mean local clinic time, and
// guessing UTC would silently shift bookings by hours.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO parses an ISO-8601 datetime string. Leading/trailing whitespace is
// trimmed and a trailing "Z" is honored as UTC. Offset-qualified values keep
// their offset as parsed; naive values are attached to the business timezone.
func (n *Normalizer) ParseISO(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, &ParseError{Value: value}
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02 15:04:05-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: value}
}

// ToBusinessTime normalizes a datetime into the business timezone. A zero
// time passes through unchanged.
func (n *Normalizer) ToBusinessTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(n.loc)
}

// EnsureFuture guarantees the returned datetime is not before the reference,
// advancing one calendar day at a time so that time-of-day (and weekday
// offset, for whole-day gaps) survives DST boundaries. The returned bool
// reports whether any adjustment happened.
func (n *Normalizer) EnsureFuture(t, reference time.Time) (time.Time, bool, error) {
	adjusted := n.ToBusinessTime(t)
	ref := n.ToBusinessTime(reference)

	adjustedCount := 0
	for adjusted.Before(ref) {
		adjusted = adjusted.AddDate(0, 0, 1)
		adjustedCount++
		if adjustedCount > maxDayAdvance {
			return time.Time{}, false, &NormalizationError{
				Message: fmt.Sprintf("date %s is more than three years in the past", t.Format(time.RFC3339)),
			}
		}
	}
	return adjusted, adjustedCount > 0, nil
}

// Display layouts are a contract surface consumed verbatim by customer-facing
// text; changing them changes what customers read.
const (
	smsDisplayLayout   = "January 2, 2006 at 3:04 PM"
	voiceDisplayLayout = "3:04 PM on January 2, 2006"
)

// FormatForDisplay renders a datetime as channel-appropriate human phrasing.
// Voice reads the time first; SMS and email lead with the date.
func (n *Normalizer) FormatForDisplay(t time.Time, channel string) string {
	local := n.ToBusinessTime(t)
	if channel == "voice" {
		return local.Format(voiceDisplayLayout)
	}
	return local.Format(smsDisplayLayout)
}

// WallClockEqual compares two datetimes on their local wall-clock fields with
// timezone information deliberately ignored. This tolerates the upstream
// calendar reporting an offset-qualified string while the language model
// echoes a naive one for the same instant.
func WallClockEqual(a, b time.Time) bool {
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day() &&
		a.Hour() == b.Hour() &&
		a.Minute() == b.Minute() &&
		a.Second() == b.Second()
}
