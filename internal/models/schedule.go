// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"
)

// WeeklySchedule is a user's explicit availability for one Monday-aligned
// week. Exactly one row may exist per (user, week); weeks without a row are
// synthesized from the DefaultSchedule at read time and never written back.
type WeeklySchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_week" json:"user_id"`
	WeekStart time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_week" json:"week_start"`
	// DaysJSON stores the WeekAvailability payload as a JSON document.
	DaysJSON  string    `gorm:"column:days;type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

// Days decodes the stored week payload. Corrupt rows decode to an empty week
// rather than failing the read path.
func (s *WeeklySchedule) Days() WeekAvailability {
	return decodeDays(s.DaysJSON)
}

// SetDays encodes and stores the week payload.
func (s *WeeklySchedule) SetDays(days WeekAvailability) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return NewInternalError(err)
	}
	s.DaysJSON = string(raw)
	return nil
}

// DefaultSchedule is a user's recurring weekly template. One per user,
// overwritten wholesale on each save; never mutated by normal week edits.
type DefaultSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	DaysJSON  string    `gorm:"column:days;type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (DefaultSchedule) TableName() string {
	return "default_schedules"
}

// Days decodes the stored template payload.
func (s *DefaultSchedule) Days() WeekAvailability {
	return decodeDays(s.DaysJSON)
}

// SetDays encodes and stores the template payload.
func (s *DefaultSchedule) SetDays(days WeekAvailability) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return NewInternalError(err)
	}
	s.DaysJSON = string(raw)
	return nil
}

func decodeDays(raw string) WeekAvailability {
	if raw == "" {
		return WeekAvailability{}
	}
	var days WeekAvailability
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return WeekAvailability{}
	}
	return days
}
