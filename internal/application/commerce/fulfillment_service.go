package commerce

import (
	"context"
	"errors"

	"github.com/edustack/backend/internal/domain/catalog"
	"github.com/edustack/backend/internal/domain/commerce"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FulfillmentService wraps the atomic fulfillment operation with the
// side effects that live outside the transaction: event publication and the
// purchase receipt. Both the redirect-capture path and the webhook path come
// through here with the same purchase id.
type FulfillmentService struct {
	fulfillments commerce.FulfillmentRepository
	purchases    commerce.PurchaseRepository
	courses      catalog.CourseRepository
	eventBus     shared.EventPublisher
	mailer       notification.Mailer
	logger       *zap.Logger
}

// FulfillmentServiceConfig contains dependencies for FulfillmentService
type FulfillmentServiceConfig struct {
	Fulfillments commerce.FulfillmentRepository
	Purchases    commerce.PurchaseRepository
	Courses      catalog.CourseRepository
	EventBus     shared.EventPublisher
	Mailer       notification.Mailer
	Logger       *zap.Logger
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(cfg FulfillmentServiceConfig) *FulfillmentService {
	return &FulfillmentService{
		fulfillments: cfg.Fulfillments,
		purchases:    cfg.Purchases,
		courses:      cfg.Courses,
		eventBus:     cfg.EventBus,
		mailer:       cfg.Mailer,
		logger:       cfg.Logger,
	}
}

// FulfillmentResult reports the outcome of a fulfillment attempt
type FulfillmentResult struct {
	PurchaseID uuid.UUID `json:"purchase_id"`
	Applied    bool      `json:"applied"`
}

// Fulfill runs the fulfillment transaction and, when it applied, the
// post-commit side effects. A no-op outcome (already paid) is success.
func (s *FulfillmentService) Fulfill(ctx context.Context, purchaseID uuid.UUID, captureID string) (*FulfillmentResult, error) {
	applied, err := s.fulfillments.Fulfill(ctx, purchaseID, captureID)
	if err != nil {
		if errors.Is(err, shared.ErrOutOfStock) {
			s.logger.Error("fulfillment aborted, course is sold out",
				zap.String("purchase_id", purchaseID.String()),
			)
		}
		return nil, err
	}

	result := &FulfillmentResult{PurchaseID: purchaseID, Applied: applied}
	if !applied {
		s.logger.Info("fulfillment already applied, skipping",
			zap.String("purchase_id", purchaseID.String()),
		)
		return result, nil
	}

	s.logger.Info("purchase fulfilled",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("capture_id", captureID),
	)
	s.notifyFulfilled(ctx, purchaseID)
	return result, nil
}

// FulfillByProviderOrder resolves the local purchase for a gateway order and
// fulfills it. Used by the webhook path, where only the order id is known.
func (s *FulfillmentService) FulfillByProviderOrder(ctx context.Context, providerOrderID, captureID string) (*FulfillmentResult, error) {
	purchase, err := s.purchases.FindByProviderOrderID(ctx, providerOrderID)
	if err != nil {
		return nil, err
	}
	return s.Fulfill(ctx, purchase.ID, captureID)
}

// notifyFulfilled publishes the completion event and sends the receipt.
// Failures are logged and swallowed, the committed fulfillment stands.
func (s *FulfillmentService) notifyFulfilled(ctx context.Context, purchaseID uuid.UUID) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		s.logger.Warn("failed to load fulfilled purchase for notification",
			zap.String("purchase_id", purchaseID.String()),
			zap.Error(err),
		)
		return
	}

	if s.eventBus != nil {
		evt := commerce.NewPurchaseCompletedEvent(purchase)
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			s.logger.Warn("failed to publish purchase completed event", zap.Error(err))
		}
	}

	courseTitle := purchase.CourseID.String()
	if course, err := s.courses.FindByID(ctx, purchase.CourseID); err == nil {
		courseTitle = course.Title
	}
	if err := s.mailer.SendPurchaseReceipt(ctx, purchase.UserID.String(), courseTitle, purchase.Amount, purchase.Currency); err != nil {
		s.logger.Warn("failed to send purchase receipt",
			zap.String("purchase_id", purchaseID.String()),
			zap.Error(err),
		)
	}
}
