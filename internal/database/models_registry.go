package database

import "gatherly/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Friendship{},
		&models.WeeklySchedule{},
		&models.DefaultSchedule{},
		&models.CalendarSyncAccount{},
	}
}
