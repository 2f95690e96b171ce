package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSubscriptionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subscription.Subscription{}))
	return db
}

func seedSubscription(t *testing.T, db *gorm.DB, userID uuid.UUID, providerID string, status subscription.Status) *subscription.Subscription {
	t.Helper()

	sub, err := subscription.NewSubscription(userID, uuid.New(), providerID)
	require.NoError(t, err)
	if status != subscription.StatusPending {
		require.NoError(t, sub.Activate(time.Now().Add(-time.Hour), time.Now().Add(30*24*time.Hour)))
	}
	switch status {
	case subscription.StatusCancelled:
		require.NoError(t, sub.Cancel(time.Now()))
	case subscription.StatusPastDue:
		require.NoError(t, sub.MarkPastDue())
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestSubscriptionRepository_SaveActivationReplacing(t *testing.T) {
	ctx := context.Background()
	db := setupSubscriptionTestDB(t)
	repo := NewGormSubscriptionRepository(db)

	userID := uuid.New()
	old := seedSubscription(t, db, userID, "I-OLD", subscription.StatusActive)
	stale := seedSubscription(t, db, userID, "I-STALE", subscription.StatusPastDue)

	fresh, err := subscription.NewSubscription(userID, uuid.New(), "I-NEW")
	require.NoError(t, err)
	require.NoError(t, fresh.Activate(time.Now(), time.Now().Add(30*24*time.Hour)))

	err = repo.SaveActivationReplacing(ctx, fresh, []subscription.Subscription{*old, *stale})
	require.NoError(t, err)

	var gotOld, gotStale, gotFresh subscription.Subscription
	require.NoError(t, db.First(&gotOld, "id = ?", old.ID).Error)
	require.NoError(t, db.First(&gotStale, "id = ?", stale.ID).Error)
	require.NoError(t, db.First(&gotFresh, "id = ?", fresh.ID).Error)

	assert.Equal(t, subscription.StatusExpired, gotOld.Status)
	assert.Equal(t, subscription.StatusExpired, gotStale.Status)
	assert.Equal(t, subscription.StatusActive, gotFresh.Status)

	subs, err := repo.FindNonTerminalByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, fresh.ID, subs[0].ID)
}

func TestSubscriptionRepository_FindCurrentByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("active subscription is current", func(t *testing.T) {
		db := setupSubscriptionTestDB(t)
		repo := NewGormSubscriptionRepository(db)

		userID := uuid.New()
		sub := seedSubscription(t, db, userID, "I-ACT", subscription.StatusActive)

		got, err := repo.FindCurrentByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)
	})

	t.Run("cancelled subscription stays current until period end", func(t *testing.T) {
		db := setupSubscriptionTestDB(t)
		repo := NewGormSubscriptionRepository(db)

		userID := uuid.New()
		sub := seedSubscription(t, db, userID, "I-CAN", subscription.StatusCancelled)

		got, err := repo.FindCurrentByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)
	})

	t.Run("cancelled subscription past its period is not current", func(t *testing.T) {
		db := setupSubscriptionTestDB(t)
		repo := NewGormSubscriptionRepository(db)

		userID := uuid.New()
		sub, err := subscription.NewSubscription(userID, uuid.New(), "I-GONE")
		require.NoError(t, err)
		require.NoError(t, sub.Activate(time.Now().Add(-60*24*time.Hour), time.Now().Add(-time.Hour)))
		require.NoError(t, sub.Cancel(time.Now().Add(-30*24*time.Hour)))
		require.NoError(t, db.Create(sub).Error)

		_, err = repo.FindCurrentByUser(ctx, userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("pending subscription is not current", func(t *testing.T) {
		db := setupSubscriptionTestDB(t)
		repo := NewGormSubscriptionRepository(db)

		userID := uuid.New()
		seedSubscription(t, db, userID, "I-PEND", subscription.StatusPending)

		_, err := repo.FindCurrentByUser(ctx, userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSubscriptionRepository_FindByProviderSubscriptionID(t *testing.T) {
	ctx := context.Background()
	db := setupSubscriptionTestDB(t)
	repo := NewGormSubscriptionRepository(db)

	sub := seedSubscription(t, db, uuid.New(), "I-XYZ", subscription.StatusActive)

	got, err := repo.FindByProviderSubscriptionID(ctx, "I-XYZ")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = repo.FindByProviderSubscriptionID(ctx, "I-MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
