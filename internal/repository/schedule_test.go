package repository

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSetDays(t *testing.T, schedule *models.WeeklySchedule, days models.WeekAvailability) {
	t.Helper()
	require.NoError(t, schedule.SetDays(days))
}

func TestScheduleRepository_UpsertWeek(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	first := &models.WeeklySchedule{UserID: 1, WeekStart: weekStart}
	mustSetDays(t, first, models.WeekAvailability{
		"monday": {Available: true, TimeRanges: []models.TimeRange{{Start: "09:00", End: "17:00"}}},
	})
	require.NoError(t, repo.UpsertWeek(ctx, first))

	// A second submit for the same week replaces the row wholesale.
	second := &models.WeeklySchedule{UserID: 1, WeekStart: weekStart}
	mustSetDays(t, second, models.WeekAvailability{
		"friday": {Available: true, TimeRanges: []models.TimeRange{{Start: "18:00", End: "21:00"}}},
	})
	require.NoError(t, repo.UpsertWeek(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.WeeklySchedule{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.GetWeek(ctx, 1, weekStart)
	require.NoError(t, err)
	require.NotNil(t, stored)

	days := stored.Days()
	assert.Contains(t, days, "friday")
	assert.NotContains(t, days, "monday")
}

func TestScheduleRepository_GetWeekAbsent(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewScheduleRepository(db)

	stored, err := repo.GetWeek(context.Background(), 42, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func TestScheduleRepository_GetWeeksForUsers(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	otherWeek := weekStart.AddDate(0, 0, 7)

	for _, row := range []struct {
		userID uint
		week   time.Time
	}{
		{1, weekStart},
		{2, weekStart},
		{3, otherWeek},
	} {
		schedule := &models.WeeklySchedule{UserID: row.userID, WeekStart: row.week}
		mustSetDays(t, schedule, models.WeekAvailability{})
		require.NoError(t, repo.UpsertWeek(ctx, schedule))
	}

	schedules, err := repo.GetWeeksForUsers(ctx, []uint{1, 2, 3}, weekStart)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)

	schedules, err = repo.GetWeeksForUsers(ctx, nil, weekStart)
	assert.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestScheduleRepository_DeleteWeek(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	schedule := &models.WeeklySchedule{UserID: 1, WeekStart: weekStart}
	mustSetDays(t, schedule, models.WeekAvailability{})
	require.NoError(t, repo.UpsertWeek(ctx, schedule))

	require.NoError(t, repo.DeleteWeek(ctx, 1, weekStart))

	stored, err := repo.GetWeek(ctx, 1, weekStart)
	assert.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDefaultScheduleRepository_SaveOverwrites(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewDefaultScheduleRepository(db)
	ctx := context.Background()

	first := &models.DefaultSchedule{UserID: 1}
	require.NoError(t, first.SetDays(models.WeekAvailability{
		"monday": {Available: true, TimeRanges: []models.TimeRange{{Start: "09:00", End: "17:00"}}},
	}))
	require.NoError(t, repo.Save(ctx, first))

	second := &models.DefaultSchedule{UserID: 1}
	require.NoError(t, second.SetDays(models.WeekAvailability{
		"sunday": {Available: true, TimeRanges: []models.TimeRange{{Start: "10:00", End: "12:00"}}},
	}))
	require.NoError(t, repo.Save(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.DefaultSchedule{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Contains(t, stored.Days(), "sunday")

	absent, err := repo.Get(ctx, 2)
	assert.NoError(t, err)
	assert.Nil(t, absent)
}
