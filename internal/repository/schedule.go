package repository

import (
	"context"
	"errors"
	"time"

	"gatherly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleRepository defines the interface for weekly schedule data operations
type ScheduleRepository interface {
	GetWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklySchedule, error)
	UpsertWeek(ctx context.Context, schedule *models.WeeklySchedule) error
	GetWeeksForUsers(ctx context.Context, userIDs []uint, weekStart time.Time) ([]models.WeeklySchedule, error)
	DeleteWeek(ctx context.Context, userID uint, weekStart time.Time) error
}

// scheduleRepository implements ScheduleRepository
type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetWeek(ctx context.Context, userID uint, weekStart time.Time) (*models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No explicit week stored
		}
		return nil, models.NewInternalError(err)
	}
	return &schedule, nil
}

// UpsertWeek replaces the stored week wholesale, keyed on (user_id, week_start).
func (r *scheduleRepository) UpsertWeek(ctx context.Context, schedule *models.WeeklySchedule) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"days", "updated_at"}),
		}).
		Create(schedule).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *scheduleRepository) GetWeeksForUsers(ctx context.Context, userIDs []uint, weekStart time.Time) ([]models.WeeklySchedule, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var schedules []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND week_start = ?", userIDs, weekStart).
		Find(&schedules).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return schedules, nil
}

func (r *scheduleRepository) DeleteWeek(ctx context.Context, userID uint, weekStart time.Time) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		Delete(&models.WeeklySchedule{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
