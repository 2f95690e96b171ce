package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFulfillmentRepository implements commerce.FulfillmentRepository using
// a single GORM transaction per fulfillment.
type GormFulfillmentRepository struct {
	db       *gorm.DB
	provider string
}

// NewGormFulfillmentRepository creates a new GormFulfillmentRepository
func NewGormFulfillmentRepository(db *gorm.DB, provider string) *GormFulfillmentRepository {
	return &GormFulfillmentRepository{db: db, provider: provider}
}

// Fulfill runs the fulfillment transaction for a captured purchase.
//
// The pending->paid flip is a guarded update, so a concurrent or redelivered
// capture for the same purchase finds zero rows and returns applied=false
// without touching any dependent table. The seat decrement is the only guard
// that aborts: selling the last seat twice rolls the whole transaction back
// with shared.ErrOutOfStock. An exhausted coupon is deliberately not a guard;
// the purchase keeps its snapshot price and only the usage counter stays put.
func (r *GormFulfillmentRepository) Fulfill(ctx context.Context, purchaseID uuid.UUID, captureID string) (bool, error) {
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase commerce.Purchase
		if err := tx.First(&purchase, "id = ?", purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		now := time.Now()
		flip := tx.Model(&commerce.Purchase{}).
			Where("id = ? AND status <> ?", purchaseID, commerce.PurchaseStatusPaid).
			Updates(map[string]interface{}{
				"status":     commerce.PurchaseStatusPaid,
				"paid_at":    now,
				"updated_at": now,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			// Already paid. Every side effect ran with the first capture.
			return nil
		}

		var course catalog.Course
		if err := tx.First(&course, "id = ?", purchase.CourseID).Error; err != nil {
			return err
		}
		if course.TracksSeats() {
			seat := tx.Model(&catalog.Course{}).
				Where("id = ? AND seats_remaining > 0", course.ID).
				Update("seats_remaining", gorm.Expr("seats_remaining - 1"))
			if seat.Error != nil {
				return seat.Error
			}
			if seat.RowsAffected == 0 {
				return shared.ErrOutOfStock
			}
		}

		enrollment, err := commerce.NewEnrollment(purchase.UserID, purchase.CourseID, commerce.EnrollmentSourcePurchase)
		if err != nil {
			return err
		}
		// Re-acquired access refreshes the existing row instead of failing on
		// the unique pair.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"source", "updated_at"}),
		}).Create(enrollment).Error; err != nil {
			return err
		}

		record := commerce.NewPaymentRecord(
			purchase.ID, purchase.UserID,
			purchase.Amount, purchase.Currency,
			r.provider, purchase.ProviderOrderID, captureID,
		)
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if purchase.CouponID != nil {
			// RowsAffected == 0 means the coupon ran out of uses after checkout;
			// the snapshot price stands and only the counter is left alone.
			usage := tx.Model(&commerce.Coupon{}).
				Where("id = ? AND (max_uses IS NULL OR used_count < max_uses)", *purchase.CouponID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if usage.Error != nil {
				return usage.Error
			}
		}

		entry := commerce.NewActivityLog(
			purchase.UserID,
			commerce.ActivityPurchaseCompleted,
			purchase.ID,
			fmt.Sprintf("course %s paid %s %s", purchase.CourseID, purchase.Amount.StringFixed(2), purchase.Currency),
		)
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

var _ commerce.FulfillmentRepository = (*GormFulfillmentRepository)(nil)
