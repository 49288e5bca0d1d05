package filter

import (
	"fmt"
	"strings"
	"time"
)

// Period is a named time window over trade close times.
type Period int

const (
	AllTime Period = iota
	Today
	Last7Days
	Last30Days
	Last90Days
	ThisMonth
	LastMonth
	ThisYear
	Custom
)

var periods = []struct {
	p       Period
	key     string
	display string
}{
	{AllTime, "all", "All Time"},
	{Today, "today", "Today"},
	{Last7Days, "7d", "Last 7 Days"},
	{Last30Days, "30d", "Last 30 Days"},
	{Last90Days, "90d", "Last 90 Days"},
	{ThisMonth, "this-month", "This Month"},
	{LastMonth, "last-month", "Last Month"},
	{ThisYear, "this-year", "This Year"},
	{Custom, "custom", "Custom Range"},
}

func (p Period) String() string {
	for _, e := range periods {
		if e.p == p {
			return e.display
		}
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// ParsePeriod accepts a short key ("30d", "last-month") or a display
// name ("Last 30 Days"), case-insensitively. Empty means AllTime.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllTime, nil
	}
	for _, e := range periods {
		if strings.EqualFold(s, e.key) || strings.EqualFold(s, e.display) {
			return e.p, nil
		}
	}
	return AllTime, fmt.Errorf("unknown period %q", s)
}

// Window is a Period plus the dates of a custom range. From and To are
// calendar dates; their time of day is ignored.
type Window struct {
	Period Period
	From   time.Time
	To     time.Time
}

// Bounds resolves w against now, in now's location. ok is false when the
// window does not restrict anything. A zero end means open-ended; both
// bounds are inclusive.
func (w Window) Bounds(now time.Time) (start, end time.Time, ok bool) {
	loc := now.Location()
	midnight := startOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	switch w.Period {
	case Today:
		return midnight, time.Time{}, true
	case Last7Days:
		return now.AddDate(0, 0, -7), time.Time{}, true
	case Last30Days:
		return now.AddDate(0, 0, -30), time.Time{}, true
	case Last90Days:
		return now.AddDate(0, 0, -90), time.Time{}, true
	case ThisMonth:
		return firstOfMonth, time.Time{}, true
	case LastMonth:
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth.Add(-time.Nanosecond), true
	case ThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), time.Time{}, true
	case Custom:
		if w.From.IsZero() && w.To.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		if !w.From.IsZero() {
			start = startOfDay(w.From)
		}
		if !w.To.IsZero() {
			end = startOfDay(w.To).AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Contains reports whether a close time falls inside the window. A zero
// close time is only inside an unrestricted window.
func (w Window) Contains(closeTime time.Time, now time.Time) bool {
	start, end, ok := w.Bounds(now)
	if !ok {
		return true
	}
	if closeTime.IsZero() {
		return false
	}
	if !start.IsZero() && closeTime.Before(start) {
		return false
	}
	if !end.IsZero() && closeTime.After(end) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
