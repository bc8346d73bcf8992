package repository

import (
	"context"
	"errors"

	"gatherly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultScheduleRepository defines the interface for default schedule data operations
type DefaultScheduleRepository interface {
	Get(ctx context.Context, userID uint) (*models.DefaultSchedule, error)
	Save(ctx context.Context, schedule *models.DefaultSchedule) error
}

// defaultScheduleRepository implements DefaultScheduleRepository
type defaultScheduleRepository struct {
	db *gorm.DB
}

// NewDefaultScheduleRepository creates a new default schedule repository
func NewDefaultScheduleRepository(db *gorm.DB) DefaultScheduleRepository {
	return &defaultScheduleRepository{db: db}
}

func (r *defaultScheduleRepository) Get(ctx context.Context, userID uint) (*models.DefaultSchedule, error) {
	var schedule models.DefaultSchedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No template saved yet
		}
		return nil, models.NewInternalError(err)
	}
	return &schedule, nil
}

// Save overwrites the user's template wholesale.
func (r *defaultScheduleRepository) Save(ctx context.Context, schedule *models.DefaultSchedule) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
		}).
		Create(schedule).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
