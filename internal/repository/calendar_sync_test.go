package repository

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarSyncRepository(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewCalendarSyncRepository(db)
	ctx := context.Background()

	t.Run("Save then relink overwrites", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &models.CalendarSyncAccount{
			UserID:       1,
			Provider:     "google",
			RefreshToken: "tok-1",
			SyncEnabled:  true,
		}))
		require.NoError(t, repo.Save(ctx, &models.CalendarSyncAccount{
			UserID:       1,
			Provider:     "google",
			RefreshToken: "tok-2",
			SyncEnabled:  true,
		}))

		var count int64
		require.NoError(t, db.Model(&models.CalendarSyncAccount{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		account, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "tok-2", account.RefreshToken)
	})

	t.Run("ListEnabled skips disabled accounts", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &models.CalendarSyncAccount{
			UserID:       2,
			Provider:     "google",
			RefreshToken: "tok",
			SyncEnabled:  false,
		}))

		accounts, err := repo.ListEnabled(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, uint(1), accounts[0].UserID)
	})

	t.Run("TouchLastSync", func(t *testing.T) {
		account, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.Nil(t, account.LastSync)

		at := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)
		require.NoError(t, repo.TouchLastSync(ctx, account.ID, at))

		account, err = repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, account.LastSync)
		assert.True(t, account.LastSync.Equal(at))
	})

	t.Run("Delete unlinks", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1))

		account, err := repo.GetByUserID(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, account)
	})
}
