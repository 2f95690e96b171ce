package commerce

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRepository defines persistence operations for purchases
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByProviderOrderID(ctx context.Context, orderID string) (*Purchase, error)
	FindPendingByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*Purchase, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Purchase, error)
	HasPaidPurchase(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	Save(ctx context.Context, purchase *Purchase) error
}

// FulfillmentRepository executes the atomic fulfillment transaction.
// All steps commit together or not at all; the only aborting guard is the
// seat decrement, surfaced as shared.ErrOutOfStock.
type FulfillmentRepository interface {
	// Fulfill transitions the purchase from pending to paid and applies every
	// dependent side effect (seat decrement, enrollment upsert, payment record,
	// coupon usage, audit log) in one transaction. Returns applied=false
	// without error when the purchase was already paid.
	Fulfill(ctx context.Context, purchaseID uuid.UUID, captureID string) (applied bool, err error)
}

// CouponRepository defines persistence operations for coupons
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Save(ctx context.Context, coupon *Coupon) error
}

// EnrollmentRepository defines persistence operations for enrollments
type EnrollmentRepository interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Enrollment, error)
	Upsert(ctx context.Context, enrollment *Enrollment) error
}

// PaymentRecordRepository defines persistence operations for payment records
type PaymentRecordRepository interface {
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]PaymentRecord, error)
	Create(ctx context.Context, record *PaymentRecord) error
}

// ActivityLogRepository defines persistence operations for audit entries
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]ActivityLog, error)
}
