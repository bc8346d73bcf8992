// Package models contains data structures for the application's domain models.
package models

import "time"

// CalendarSyncAccount links a user to an external calendar provider. The
// OAuth exchange that produces the refresh token happens outside this
// service; sync jobs only consume the stored credentials.
type CalendarSyncAccount struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Provider     string     `gorm:"type:varchar(20);not null;default:'google'" json:"provider"`
	RefreshToken string     `gorm:"not null" json:"-"`
	SyncEnabled  bool       `json:"sync_enabled"`
	LastSync     *time.Time `json:"last_sync,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CalendarSyncAccount) TableName() string {
	return "calendar_sync_accounts"
}
