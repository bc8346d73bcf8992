// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Displayable calendar window used when a day is marked all-day available.
// Legacy payloads that flag a day available without any range fall back to
// the old 09:00-17:00 working-hours bounds.
const (
	AllDayStart = "06:00"
	AllDayEnd   = "23:00"

	LegacyDayStart = "09:00"
	LegacyDayEnd   = "17:00"
)

// WeekdayNames lists weekday keys in storage order. Weeks are Monday-first;
// Sunday-first display is a client-side remap.
var WeekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// TimeRange is a single free interval within a day, wall-clock "HH:MM".
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ClockMinutes parses a 24-hour "HH:MM" string into minutes since midnight.
func ClockMinutes(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// MinutesClock renders minutes since midnight back to "HH:MM".
func MinutesClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Validate checks the range parses and starts before it ends.
func (r TimeRange) Validate() error {
	start, err := ClockMinutes(r.Start)
	if err != nil {
		return NewValidationError(err.Error())
	}
	end, err := ClockMinutes(r.End)
	if err != nil {
		return NewValidationError(err.Error())
	}
	if start >= end {
		return NewValidationError(fmt.Sprintf("time range start %s must be before end %s", r.Start, r.End))
	}
	return nil
}

// DayAvailability is the canonical availability for one day. TimeRanges is
// the truth; Start/End mirror the first range for older clients and are
// recomputed on every normalization. Ranges may overlap and are kept in the
// order submitted.
type DayAvailability struct {
	Available  bool        `json:"available"`
	Start      string      `json:"start,omitempty"`
	End        string      `json:"end,omitempty"`
	AllDay     bool        `json:"all_day,omitempty"`
	TimeRanges []TimeRange `json:"time_ranges"`
}

// UnavailableDay returns the canonical empty day.
func UnavailableDay() DayAvailability {
	return DayAvailability{Available: false, TimeRanges: []TimeRange{}}
}

// Normalize folds the accepted input shapes (all-day flag, explicit range
// list, legacy single start/end pair) into the canonical TimeRanges form and
// validates the result. A day marked available with nothing to derive a range
// from is rejected.
func (d *DayAvailability) Normalize() error {
	if !d.Available {
		*d = UnavailableDay()
		return nil
	}

	switch {
	case d.AllDay:
		d.TimeRanges = []TimeRange{{Start: AllDayStart, End: AllDayEnd}}
	case len(d.TimeRanges) > 0:
		// keep as submitted
	case d.Start != "" || d.End != "":
		start, end := d.Start, d.End
		if start == "" {
			start = LegacyDayStart
		}
		if end == "" {
			end = LegacyDayEnd
		}
		d.TimeRanges = []TimeRange{{Start: start, End: end}}
	default:
		return NewValidationError("day marked available with no time ranges")
	}

	for _, r := range d.TimeRanges {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	d.Start = d.TimeRanges[0].Start
	d.End = d.TimeRanges[0].End
	return nil
}

// Summary renders the day's ranges for display, e.g. "09:00-17:00, 19:00-21:00".
func (d DayAvailability) Summary() string {
	if !d.Available || len(d.TimeRanges) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.TimeRanges))
	for _, r := range d.TimeRanges {
		parts = append(parts, r.Start+"-"+r.End)
	}
	return strings.Join(parts, ", ")
}

// WeekAvailability maps weekday names to day availability.
type WeekAvailability map[string]DayAvailability

// Normalize validates weekday keys and normalizes every day in place.
func (w WeekAvailability) Normalize() error {
	for key, day := range w {
		if !IsWeekdayName(key) {
			return NewValidationError(fmt.Sprintf("unknown weekday %q", key))
		}
		if err := day.Normalize(); err != nil {
			return err
		}
		w[key] = day
	}
	return nil
}

// Day returns the named day, or the canonical unavailable day when unset.
func (w WeekAvailability) Day(name string) DayAvailability {
	if day, ok := w[strings.ToLower(name)]; ok {
		return day
	}
	return UnavailableDay()
}

// IsWeekdayName reports whether s is a lowercase weekday key.
func IsWeekdayName(s string) bool {
	for _, name := range WeekdayNames {
		if s == name {
			return true
		}
	}
	return false
}

// WeekdayName returns the lowercase weekday key for a date.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// WeekStartFor returns the Monday of the week containing t, truncated to a date.
func WeekStartFor(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
