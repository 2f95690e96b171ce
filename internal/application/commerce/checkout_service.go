package commerce

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutService creates gateway orders for course purchases and completes
// them on the redirect-capture path.
type CheckoutService struct {
	purchases   commerce.PurchaseRepository
	courses     catalog.CourseRepository
	coupons     commerce.CouponRepository
	gateway     payment.Gateway
	fulfillment *FulfillmentService
	logger      *zap.Logger
}

// CheckoutServiceConfig contains dependencies for CheckoutService
type CheckoutServiceConfig struct {
	Purchases   commerce.PurchaseRepository
	Courses     catalog.CourseRepository
	Coupons     commerce.CouponRepository
	Gateway     payment.Gateway
	Fulfillment *FulfillmentService
	Logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cfg CheckoutServiceConfig) *CheckoutService {
	return &CheckoutService{
		purchases:   cfg.Purchases,
		courses:     cfg.Courses,
		coupons:     cfg.Coupons,
		gateway:     cfg.Gateway,
		fulfillment: cfg.Fulfillment,
		logger:      cfg.Logger,
	}
}

// CheckoutResult describes the gateway order awaiting buyer approval
type CheckoutResult struct {
	PurchaseID      uuid.UUID       `json:"purchase_id"`
	ProviderOrderID string          `json:"provider_order_id"`
	ApprovalURL     string          `json:"approval_url"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// CreateOrder snapshots pricing for the course (applying an optional coupon),
// creates the gateway order and records the pending purchase. A re-purchase
// attempt refreshes the existing pending row instead of duplicating it.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID, courseID uuid.UUID, couponCode string) (*CheckoutResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.Published {
		return nil, shared.NewDomainError("COURSE_UNAVAILABLE", "Course is not available for purchase")
	}

	alreadyPaid, err := s.purchases.HasPaidPurchase(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if alreadyPaid {
		return nil, shared.ErrAlreadyExists
	}

	discount := decimal.Zero
	var couponID *uuid.UUID
	if code := strings.TrimSpace(couponCode); code != "" {
		coupon, err := s.coupons.FindByCode(ctx, strings.ToUpper(code))
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrCouponInvalid
			}
			return nil, err
		}
		discount, err = coupon.DiscountFor(course.Price, time.Now())
		if err != nil {
			return nil, err
		}
		couponID = &coupon.ID
	}

	purchase, err := s.pendingPurchase(ctx, userID, course, discount, couponID)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, purchase.Amount, purchase.Currency, purchase.ID.String(), course.Title)
	if err != nil {
		return nil, err
	}

	purchase.AttachProviderOrder(order.ID)
	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("checkout order created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("order_id", order.ID),
		zap.String("amount", purchase.Amount.StringFixed(2)),
	)

	return &CheckoutResult{
		PurchaseID:      purchase.ID,
		ProviderOrderID: order.ID,
		ApprovalURL:     order.ApprovalURL,
		Amount:          purchase.Amount,
		Currency:        purchase.Currency,
	}, nil
}

// CaptureOrder captures an approved gateway order and fulfills the purchase.
// The guarded status flip inside fulfillment makes this safe to race with the
// webhook delivery for the same order.
func (s *CheckoutService) CaptureOrder(ctx context.Context, providerOrderID string) (*FulfillmentResult, error) {
	purchase, err := s.purchases.FindByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}
	if purchase.IsPaid() {
		return &FulfillmentResult{PurchaseID: purchase.ID, Applied: false}, nil
	}

	capture, err := s.gateway.CaptureOrder(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}
	if capture.Status != "COMPLETED" {
		s.logger.Warn("gateway capture not completed",
			zap.String("order_id", providerOrderID),
			zap.String("status", capture.Status),
		)
		return nil, shared.NewDomainError("CAPTURE_INCOMPLETE", "Payment capture was not completed")
	}

	return s.fulfillment.Fulfill(ctx, purchase.ID, capture.CaptureID)
}

// pendingPurchase creates the pending purchase or refreshes the snapshot on
// an existing pending row.
func (s *CheckoutService) pendingPurchase(ctx context.Context, userID uuid.UUID, course *catalog.Course, discount decimal.Decimal, couponID *uuid.UUID) (*commerce.Purchase, error) {
	existing, err := s.purchases.FindPendingByUserAndCourse(ctx, userID, course.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := existing.RefreshPricing(course.Price, discount); err != nil {
			return nil, err
		}
		existing.CouponID = couponID
		return existing, nil
	}

	purchase, err := commerce.NewPurchase(userID, course.ID, course.Price, discount, course.Currency)
	if err != nil {
		return nil, err
	}
	if couponID != nil {
		purchase.AttachCoupon(*couponID)
	}
	return purchase, nil
}
