// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a user in the Gatherly application. Phone is the primary
// handle friends search by; username is optional.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"index" json:"username,omitempty"`
	Email            string         `gorm:"unique;not null" json:"email"`
	Phone            string         `gorm:"uniqueIndex;not null" json:"phone"`
	Password         string         `gorm:"not null" json:"-"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Timezone         string         `gorm:"default:'America/New_York'" json:"timezone"`
	SMSNotifications bool           `gorm:"default:false" json:"sms_notifications"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName returns the best display name available for the user.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	}
	// Fall back to the email prefix.
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Initials returns a two-letter tag rendered on calendar day cells.
func (u *User) Initials() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return strings.ToUpper(u.FirstName[:1] + u.LastName[:1])
	case len(u.FirstName) > 1:
		return strings.ToUpper(u.FirstName[:2])
	case u.FirstName != "":
		return strings.ToUpper(u.FirstName + "X")
	case len(u.Username) >= 2:
		return strings.ToUpper(u.Username[:2])
	}
	if len(u.Email) >= 2 {
		return strings.ToUpper(u.Email[:2])
	}
	return "??"
}
