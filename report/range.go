package report

import (
	"fmt"
	"time"

	"github.com/bobinette/deptlib/errors"
)

// DefaultStart is used when a request does not give a start date.
var DefaultStart = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)

// Range is an inclusive period of calendar days, in UTC. End is the last
// instant of its day.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds the range [start, end]. A zero start defaults to
// DefaultStart and a zero end to the day of now.
func NewRange(start, end, now time.Time) (Range, error) {
	if start.IsZero() {
		start = DefaultStart
	}
	if end.IsZero() {
		end = now
	}

	start, end = day(start), day(end)
	if start.After(end) {
		return Range{}, errors.New(
			fmt.Sprintf("invalid range %s - %s", start.Format(DateLayout), end.Format(DateLayout)),
			errors.BadRequest(),
			errors.WithCause(ErrInvalidRange),
		)
	}

	return Range{
		Start: start,
		End:   end.AddDate(0, 0, 1).Add(-time.Nanosecond),
	}, nil
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Midpoint returns the day in the middle of the range.
func (r Range) Midpoint() time.Time {
	return day(r.Start.Add(r.End.Sub(r.Start) / 2))
}

// FallbackPolicy gives the effective publish date of a work that has none.
type FallbackPolicy func(Range) time.Time

// MidpointFallback dates undated works at the middle of the requested range.
func MidpointFallback(r Range) time.Time {
	return r.Midpoint()
}

// FixedFallback dates undated works at date, whatever the range.
func FixedFallback(date time.Time) FallbackPolicy {
	date = day(date)
	return func(Range) time.Time {
		return date
	}
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
