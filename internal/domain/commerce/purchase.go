package commerce

import (
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending"
	PurchaseStatusPaid    PurchaseStatus = "paid"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	return s == PurchaseStatusPending || s == PurchaseStatusPaid
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// Purchase records one buyer/course pairing. Status is monotonic: once paid it
// never reverts, and the pending->paid transition happens exclusively through
// the guarded update inside the fulfillment transaction. A re-purchase attempt
// refreshes the existing pending row instead of creating a duplicate.
type Purchase struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_purchase_user_course,priority:1"`
	CourseID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_user_course,priority:2"`
	Status           PurchaseStatus  `gorm:"size:16;not null;default:'pending';index"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency         string          `gorm:"size:3;not null"`
	ListPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountApplied  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CouponID         *uuid.UUID      `gorm:"type:uuid;index"`
	ProviderOrderID  string          `gorm:"size:64;index"`
	PaidAt           *time.Time
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a pending purchase with a pricing snapshot
func NewPurchase(userID, courseID uuid.UUID, listPrice, discount decimal.Decimal, currency string) (*Purchase, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if courseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COURSE", "Course ID cannot be empty")
	}
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	if discount.IsNegative() || discount.GreaterThan(listPrice) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between zero and the list price")
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		CourseID:          courseID,
		Status:            PurchaseStatusPending,
		Amount:            listPrice.Sub(discount),
		Currency:          currency,
		ListPrice:         listPrice,
		DiscountApplied:   discount,
	}, nil
}

// AttachCoupon records the coupon used for the pricing snapshot
func (p *Purchase) AttachCoupon(couponID uuid.UUID) {
	p.CouponID = &couponID
}

// AttachProviderOrder links the purchase to the gateway order created for it
func (p *Purchase) AttachProviderOrder(orderID string) {
	p.ProviderOrderID = orderID
}

// RefreshPricing updates the snapshot on a still-pending purchase.
// Paid purchases are immutable.
func (p *Purchase) RefreshPricing(listPrice, discount decimal.Decimal) error {
	if p.Status == PurchaseStatusPaid {
		return shared.ErrInvalidState
	}
	if discount.IsNegative() || discount.GreaterThan(listPrice) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between zero and the list price")
	}
	p.ListPrice = listPrice
	p.DiscountApplied = discount
	p.Amount = listPrice.Sub(discount)
	return nil
}

// IsPaid reports whether the purchase has been fulfilled
func (p *Purchase) IsPaid() bool {
	return p.Status == PurchaseStatusPaid
}
