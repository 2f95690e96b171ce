package commerce

import (
	"strings"
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CouponType represents how a coupon discounts an order
type CouponType string

const (
	CouponTypeFixed   CouponType = "fixed"
	CouponTypePercent CouponType = "percent"
)

// IsValid checks if the coupon type is known
func (t CouponType) IsValid() bool {
	return t == CouponTypeFixed || t == CouponTypePercent
}

// Coupon is a discount code. UsedCount is only ever advanced through the
// guarded increment inside the fulfillment transaction, so it can never
// exceed MaxUses even under concurrent fulfillments.
type Coupon struct {
	shared.BaseAggregateRoot
	Code           string           `gorm:"size:64;not null;uniqueIndex"`
	Type           CouponType       `gorm:"size:16;not null"`
	Value          decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	UsedCount      int              `gorm:"not null;default:0"`
	MaxUses        *int             `gorm:"default:null"`
	ValidFrom      time.Time        `gorm:"not null"`
	ValidUntil     *time.Time       `gorm:"default:null"`
	MinOrderAmount *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MaxDiscount    *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon valid from now
func NewCoupon(code string, couponType CouponType, value decimal.Decimal) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if !couponType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COUPON_TYPE", "Coupon type must be fixed or percent")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_COUPON_VALUE", "Coupon value must be positive")
	}
	if couponType == CouponTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_COUPON_VALUE", "Percentage discount cannot exceed 100")
	}

	return &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Type:              couponType,
		Value:             value,
		ValidFrom:         time.Now(),
	}, nil
}

// IsActive reports whether the coupon can be redeemed at the given time
func (c *Coupon) IsActive(at time.Time) bool {
	if at.Before(c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && at.After(*c.ValidUntil) {
		return false
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return false
	}
	return true
}

// DiscountFor computes the discount this coupon grants on an order amount.
// Returns ErrCouponInvalid when the coupon is expired, exhausted, or the
// order is below the minimum amount.
func (c *Coupon) DiscountFor(amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if !c.IsActive(at) {
		return decimal.Zero, shared.ErrCouponInvalid
	}
	if c.MinOrderAmount != nil && amount.LessThan(*c.MinOrderAmount) {
		return decimal.Zero, shared.ErrCouponInvalid
	}

	var discount decimal.Decimal
	switch c.Type {
	case CouponTypeFixed:
		discount = c.Value
	case CouponTypePercent:
		discount = amount.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	default:
		return decimal.Zero, shared.ErrCouponInvalid
	}

	if c.MaxDiscount != nil && discount.GreaterThan(*c.MaxDiscount) {
		discount = *c.MaxDiscount
	}
	if discount.GreaterThan(amount) {
		discount = amount
	}
	return discount, nil
}

// HasUsesLeft reports whether the usage cap has not been reached
func (c *Coupon) HasUsesLeft() bool {
	return c.MaxUses == nil || c.UsedCount < *c.MaxUses
}
