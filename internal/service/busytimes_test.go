package service

import (
	"reflect"
	"testing"

	"gatherly/internal/models"
)

func TestSubtractBusySplitsAroundBlock(t *testing.T) {
	ranges := []models.TimeRange{{Start: "09:00", End: "17:00"}}
	busy := []BusyInterval{{Start: 12 * 60, End: 13 * 60}}

	got := SubtractBusy(ranges, busy)
	want := []models.TimeRange{
		{Start: "09:00", End: "12:00"},
		{Start: "13:00", End: "17:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSubtractBusyDropsShortRemainders(t *testing.T) {
	ranges := []models.TimeRange{{Start: "09:00", End: "17:00"}}
	// 30 minutes before the block, 45 after. Neither survives.
	busy := []BusyInterval{
		{Start: 9*60 + 30, End: 16*60 + 15},
	}

	got := SubtractBusy(ranges, busy)
	if len(got) != 0 {
		t.Fatalf("expected no usable blocks, got %v", got)
	}
}

func TestSubtractBusyUnsortedInput(t *testing.T) {
	ranges := []models.TimeRange{{Start: "06:00", End: "23:00"}}
	busy := []BusyInterval{
		{Start: 18 * 60, End: 20 * 60},
		{Start: 8 * 60, End: 10 * 60},
	}

	got := SubtractBusy(ranges, busy)
	want := []models.TimeRange{
		{Start: "06:00", End: "08:00"},
		{Start: "10:00", End: "18:00"},
		{Start: "20:00", End: "23:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSubtractBusyNoBusyPassesThrough(t *testing.T) {
	ranges := []models.TimeRange{{Start: "09:00", End: "10:30"}}
	got := SubtractBusy(ranges, nil)
	if !reflect.DeepEqual(got, ranges) {
		t.Fatalf("got %v", got)
	}
}

func TestApplyBusyTimes(t *testing.T) {
	week := models.WeekAvailability{
		"monday":    availableDay("09:00", "17:00"),
		"tuesday":   availableDay("09:00", "17:00"),
		"wednesday": models.UnavailableDay(),
	}
	busy := map[string][]BusyInterval{
		"monday":  {{Start: 9 * 60, End: 16*60 + 30}},
		"tuesday": {{Start: 12 * 60, End: 13 * 60}},
	}

	out := ApplyBusyTimes(week, busy)

	if out["monday"].Available {
		t.Fatal("monday should become unavailable, nothing useful remains")
	}
	tue := out["tuesday"]
	if !tue.Available || len(tue.TimeRanges) != 2 {
		t.Fatalf("tuesday = %+v", tue)
	}
	if tue.Start != "09:00" || tue.End != "12:00" {
		t.Fatalf("tuesday mirror fields = %s-%s", tue.Start, tue.End)
	}
	if out["wednesday"].Available {
		t.Fatal("untouched unavailable day changed")
	}
}
