// Package clock owns the business calendar: every statistic bucket and stock
// timestamp is computed with a fixed UTC+7 offset, independent of the host zone.
package clock

import (
	"sync"
	"time"
)

const offset = 7 * 60 * 60

// Location is the fixed business time zone.
var Location = time.FixedZone("UTC+7", offset)

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System reads the wall clock and reports it in Location.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().In(Location)
}

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t.In(Location)
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

// Day returns the business calendar date of t as midnight UTC, the shape
// stored in DATE columns.
func Day(t time.Time) time.Time {
	l := t.In(Location)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is Day(c.Now()).
func Today(c Clock) time.Time {
	return Day(c.Now())
}

// Monday returns the Monday of the week containing day (weeks start on Monday).
func Monday(day time.Time) time.Time {
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7
	}
	return day.AddDate(0, 0, 1-wd)
}

// MonthBounds returns the first and last calendar day of day's month.
func MonthBounds(day time.Time) (time.Time, time.Time) {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// StartOfDay is the instant a business day begins.
func StartOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, Location)
}

// EndOfDay is the last second of a business day, inclusive upper bound for
// created_at filters.
func EndOfDay(day time.Time) time.Time {
	return StartOfDay(day).Add(24*time.Hour - time.Second)
}

func Format(day time.Time) string {
	return day.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD as a calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
