// Package models contains data structures for the application's domain models.
package models

// PaletteSize is the number of colors in the fixed friend palette. Friends
// are assigned color_index deterministically by user ID; the viewer carries
// ViewerColorIndex and is rendered distinctly by the client.
const (
	PaletteSize      = 8
	ViewerColorIndex = -1
)

// DayUser is one available person on a calendar day cell.
type DayUser struct {
	UserID        uint        `json:"id"`
	Name          string      `json:"name"`
	Initials      string      `json:"initials"`
	IsCurrentUser bool        `json:"is_current_user"`
	ColorIndex    int         `json:"color_index"`
	TimeRanges    []TimeRange `json:"time_ranges"`
	TimeSummary   string      `json:"time_range_summary"`
}

// DayDescriptor is a display-ready calendar day. Built fresh per request,
// never persisted.
type DayDescriptor struct {
	Date      string    `json:"date"`
	DayName   string    `json:"day_name"`
	DayShort  string    `json:"day_short"`
	DayNumber int       `json:"day_number"`
	IsToday   bool      `json:"is_today"`
	Users     []DayUser `json:"users"`
}

// WeekDescriptor groups seven day descriptors for the chunked month view.
type WeekDescriptor struct {
	WeekStart string          `json:"week_start"`
	Days      []DayDescriptor `json:"days"`
}
