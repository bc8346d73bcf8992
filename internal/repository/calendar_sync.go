package repository

import (
	"context"
	"errors"
	"time"

	"gatherly/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarSyncRepository defines the interface for linked calendar account data operations
type CalendarSyncRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.CalendarSyncAccount, error)
	Save(ctx context.Context, account *models.CalendarSyncAccount) error
	ListEnabled(ctx context.Context) ([]models.CalendarSyncAccount, error)
	TouchLastSync(ctx context.Context, accountID uint, at time.Time) error
	Delete(ctx context.Context, userID uint) error
}

// calendarSyncRepository implements CalendarSyncRepository
type calendarSyncRepository struct {
	db *gorm.DB
}

// NewCalendarSyncRepository creates a new calendar sync repository
func NewCalendarSyncRepository(db *gorm.DB) CalendarSyncRepository {
	return &calendarSyncRepository{db: db}
}

func (r *calendarSyncRepository) GetByUserID(ctx context.Context, userID uint) (*models.CalendarSyncAccount, error) {
	var account models.CalendarSyncAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No calendar linked
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *calendarSyncRepository) Save(ctx context.Context, account *models.CalendarSyncAccount) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"provider", "refresh_token", "sync_enabled", "updated_at"}),
		}).
		Create(account).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *calendarSyncRepository) ListEnabled(ctx context.Context) ([]models.CalendarSyncAccount, error) {
	var accounts []models.CalendarSyncAccount
	if err := r.db.WithContext(ctx).
		Where("sync_enabled = ?", true).
		Find(&accounts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

func (r *calendarSyncRepository) TouchLastSync(ctx context.Context, accountID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.CalendarSyncAccount{}).
		Where("id = ?", accountID).
		Update("last_sync", at).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *calendarSyncRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CalendarSyncAccount{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
