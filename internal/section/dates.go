package section

import "time"

// DisabledDatesConfig collects the independent constraint sources that decide
// whether a calendar date is selectable. Every field is optional; an absent
// field and an empty one both mean "no constraint of that kind". A date is
// disabled when ANY present constraint matches.
type DisabledDatesConfig struct {
	// DaysOfWeek holds weekday indices, 0 (Sunday) through 6 (Saturday).
	DaysOfWeek []int
	// Dates lists explicitly disabled calendar days.
	Dates []time.Time
	// Ranges lists inclusive start/end pairs.
	Ranges []DateRange
	// Before disables every date strictly before it. Zero means unset.
	Before time.Time
	// After disables every date strictly after it. Zero means unset.
	After time.Time
}

// DateRange is an inclusive calendar-day range; End >= Start.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the range, inclusive at both ends,
// compared at calendar-day granularity.
func (r DateRange) Contains(d time.Time) bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	day := truncateDay(d)
	return !day.Before(truncateDay(r.Start)) && !day.After(truncateDay(r.End))
}

// BuildIsDisabled builds a single predicate from the constraint sources.
// Constraints are evaluated weekdays first, then explicit dates, ranges and
// the open-ended bounds; the order is only an early-exit ordering, the
// result is the OR across all of them. A nil config disables nothing.
func BuildIsDisabled(cfg *DisabledDatesConfig) func(time.Time) bool {
	if cfg == nil {
		return func(time.Time) bool { return false }
	}

	weekdays := make(map[time.Weekday]bool, len(cfg.DaysOfWeek))
	for _, d := range cfg.DaysOfWeek {
		if d >= 0 && d <= 6 {
			weekdays[time.Weekday(d)] = true
		}
	}

	days := make(map[string]bool, len(cfg.Dates))
	for _, d := range cfg.Dates {
		if !d.IsZero() {
			days[dayKey(d)] = true
		}
	}

	return func(d time.Time) bool {
		if weekdays[d.Weekday()] {
			return true
		}
		if days[dayKey(d)] {
			return true
		}
		for _, r := range cfg.Ranges {
			if r.Contains(d) {
				return true
			}
		}
		if !cfg.Before.IsZero() && truncateDay(d).Before(truncateDay(cfg.Before)) {
			return true
		}
		if !cfg.After.IsZero() && truncateDay(d).After(truncateDay(cfg.After)) {
			return true
		}
		return false
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
