// Package rules holds the pure derivation layer: occupancy counts, payment-due
// selection, financial aggregation and room status transitions.
// Functions here never mutate their inputs and never touch storage.
package rules

import (
	"fmt"
	"time"
)

// Period selects a calendar range for financial reports
type Period string

const (
	PeriodCurrentMonth Period = "current-month"
	PeriodLastMonth    Period = "last-month"
	PeriodCurrentYear  Period = "current-year"
	PeriodLastYear     Period = "last-year"
)

// ParsePeriod validates a period selector. Empty defaults to current-month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodCurrentMonth, nil
	case PeriodCurrentMonth, PeriodLastMonth, PeriodCurrentYear, PeriodLastYear:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// DateRange is an inclusive range of calendar dates.
// Only the year/month/day of Start and End are significant.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t's calendar date lies within the range.
// Comparison uses each value's own year/month/day so stored dates are not
// shifted across midnight by a zone conversion.
func (r DateRange) Contains(t time.Time) bool {
	d := dayKey(t)
	return d >= dayKey(r.Start) && d <= dayKey(r.End)
}

// Days returns the number of calendar days in the range
func (r DateRange) Days() int {
	s := civil(r.Start)
	e := civil(r.End)
	return int(e.Sub(s).Hours()/24) + 1
}

// Resolve turns a period into a DateRange relative to now
func (p Period) Resolve(now time.Time) DateRange {
	y, m, _ := now.Date()
	loc := now.Location()

	switch p {
	case PeriodLastMonth:
		start := time.Date(y, m-1, 1, 0, 0, 0, 0, loc)
		return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
	case PeriodCurrentYear:
		return DateRange{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y, time.December, 31, 0, 0, 0, 0, loc),
		}
	case PeriodLastYear:
		return DateRange{
			Start: time.Date(y-1, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(y-1, time.December, 31, 0, 0, 0, 0, loc),
		}
	default:
		return MonthRange(now)
	}
}

// MonthRange returns the calendar month containing t
func MonthRange(t time.Time) DateRange {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return civil(t)
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

// BeforeDay reports whether a's calendar date is strictly before b's
func BeforeDay(a, b time.Time) bool {
	return dayKey(a) < dayKey(b)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
