package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByProviderSubscriptionID finds the subscription linked to a gateway subscription
func (r *GormSubscriptionRepository) FindByProviderSubscriptionID(ctx context.Context, providerID string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "provider_subscription_id = ?", providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindCurrentByUser finds the subscription that currently grants the user
// access, preferring an active one over a cancelled one still in its paid
// period.
func (r *GormSubscriptionRepository) FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	now := time.Now()
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND (status = ? OR (status = ? AND current_period_end > ?))",
			userID, subscription.StatusActive, subscription.StatusCancelled, now).
		Order("current_period_end DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindNonTerminalByUser lists the user's subscriptions that have not expired
func (r *GormSubscriptionRepository) FindNonTerminalByUser(ctx context.Context, userID uuid.UUID) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, subscription.StatusExpired).
		Order("created_at ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// SaveActivationReplacing persists the activated subscription and expires the
// displaced siblings in one transaction, so there is no window in which the
// user holds two live subscriptions.
func (r *GormSubscriptionRepository) SaveActivationReplacing(ctx context.Context, activated *subscription.Subscription, displaced []subscription.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activated).Error; err != nil {
			return err
		}
		now := time.Now()
		for i := range displaced {
			// Guarded update: a sibling some other worker already expired is
			// left alone.
			if err := tx.Model(&subscription.Subscription{}).
				Where("id = ? AND status <> ?", displaced[i].ID, subscription.StatusExpired).
				Updates(map[string]interface{}{
					"status":     subscription.StatusExpired,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ subscription.Repository = (*GormSubscriptionRepository)(nil)
