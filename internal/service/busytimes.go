package service

import (
	"sort"

	"gatherly/internal/models"
)

// MinFreeBlockMinutes is the smallest remainder worth keeping after busy
// times are carved out of an availability range. Slivers shorter than an hour
// are not useful meeting windows.
const MinFreeBlockMinutes = 60

// BusyInterval is one busy block within a day, in minutes since midnight.
type BusyInterval struct {
	Start int
	End   int
}

// SubtractBusy carves busy intervals out of a day's availability ranges,
// splitting ranges around busy blocks and dropping remainders shorter than
// MinFreeBlockMinutes. Input ranges that fail to parse are dropped.
func SubtractBusy(ranges []models.TimeRange, busy []BusyInterval) []models.TimeRange {
	if len(busy) == 0 {
		return ranges
	}

	sorted := make([]BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	result := make([]models.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		start, err := models.ClockMinutes(r.Start)
		if err != nil {
			continue
		}
		end, err := models.ClockMinutes(r.End)
		if err != nil {
			continue
		}

		free := start
		for _, b := range sorted {
			if b.End <= free || b.Start >= end {
				continue
			}
			if b.Start-free >= MinFreeBlockMinutes {
				result = append(result, models.TimeRange{
					Start: models.MinutesClock(free),
					End:   models.MinutesClock(b.Start),
				})
			}
			if b.End > free {
				free = b.End
			}
		}
		if end-free >= MinFreeBlockMinutes {
			result = append(result, models.TimeRange{
				Start: models.MinutesClock(free),
				End:   models.MinutesClock(end),
			})
		}
	}
	return result
}

// ApplyBusyTimes subtracts per-day busy intervals from a full week, marking
// days unavailable when nothing of useful length remains. Days without busy
// entries pass through untouched.
func ApplyBusyTimes(week models.WeekAvailability, busyByDay map[string][]BusyInterval) models.WeekAvailability {
	out := make(models.WeekAvailability, len(week))
	for name, day := range week {
		busy, ok := busyByDay[name]
		if !ok || !day.Available {
			out[name] = day
			continue
		}

		remaining := SubtractBusy(day.TimeRanges, busy)
		if len(remaining) == 0 {
			out[name] = models.UnavailableDay()
			continue
		}

		day.TimeRanges = remaining
		day.Start = remaining[0].Start
		day.End = remaining[0].End
		day.AllDay = false
		out[name] = day
	}
	return out
}
