package persistence

import (
	"context"
	"errors"

	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements commerce.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*commerce.Purchase, error) {
	var purchase commerce.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByProviderOrderID finds the purchase linked to a gateway order
func (r *GormPurchaseRepository) FindByProviderOrderID(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	var purchase commerce.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "provider_order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindPendingByUserAndCourse finds an unpaid purchase for the pairing
func (r *GormPurchaseRepository) FindPendingByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*commerce.Purchase, error) {
	var purchase commerce.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, commerce.PurchaseStatusPending).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByUser lists all purchases of a user, newest first
func (r *GormPurchaseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]commerce.Purchase, error) {
	var purchases []commerce.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// HasPaidPurchase reports whether the user has a fulfilled purchase of the course
func (r *GormPurchaseRepository) HasPaidPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&commerce.Purchase{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, commerce.PurchaseStatusPaid).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *commerce.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

var _ commerce.PurchaseRepository = (*GormPurchaseRepository)(nil)
