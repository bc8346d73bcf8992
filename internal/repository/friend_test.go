package repository

import (
	"context"
	"testing"

	"gatherly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository_Lifecycle(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	u1 := &models.User{Email: "f1@e.com", Phone: "+15550000001", Password: "pw", FirstName: "Ada"}
	u2 := &models.User{Email: "f2@e.com", Phone: "+15550000002", Password: "pw", FirstName: "Noa"}
	require.NoError(t, db.Create(u1).Error)
	require.NoError(t, db.Create(u2).Error)

	t.Run("Create and GetPendingRequests", func(t *testing.T) {
		friendship := &models.Friendship{
			RequesterID: u1.ID,
			AddresseeID: u2.ID,
			Status:      models.FriendshipStatusPending,
		}

		err := repo.Create(ctx, friendship)
		require.NoError(t, err)

		reqs, err := repo.GetPendingRequests(ctx, u2.ID)
		assert.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, u1.ID, reqs[0].RequesterID)
		assert.Equal(t, "Ada", reqs[0].Requester.FirstName)

		sent, err := repo.GetSentRequests(ctx, u1.ID)
		assert.NoError(t, err)
		require.Len(t, sent, 1)
		assert.Equal(t, u2.ID, sent[0].AddresseeID)
	})

	t.Run("GetFriendshipBetweenUsers is order independent", func(t *testing.T) {
		f1, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		require.NotNil(t, f1)

		f2, err := repo.GetFriendshipBetweenUsers(ctx, u2.ID, u1.ID)
		require.NoError(t, err)
		require.NotNil(t, f2)
		assert.Equal(t, f1.ID, f2.ID)

		absent, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, 9999)
		assert.NoError(t, err)
		assert.Nil(t, absent)
	})

	t.Run("UpdateStatus and GetFriends", func(t *testing.T) {
		f, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateStatus(ctx, f.ID, models.FriendshipStatusAccepted))

		friends, err := repo.GetFriends(ctx, u1.ID)
		assert.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, u2.ID, friends[0].ID)

		// Accepted friendships are symmetric.
		friends, err = repo.GetFriends(ctx, u2.ID)
		assert.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, u1.ID, friends[0].ID)
	})

	t.Run("RemoveFriendship", func(t *testing.T) {
		require.NoError(t, repo.RemoveFriendship(ctx, u2.ID, u1.ID))

		friends, err := repo.GetFriends(ctx, u1.ID)
		assert.NoError(t, err)
		assert.Empty(t, friends)
	})
}
