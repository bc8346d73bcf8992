package repository

import (
	"testing"

	"gatherly/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.WeeklySchedule{},
		&models.DefaultSchedule{},
		&models.CalendarSyncAccount{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
