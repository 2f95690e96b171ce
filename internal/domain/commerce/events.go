package commerce

import (
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types published by the commerce domain
const (
	EventTypePurchaseCompleted = "commerce.purchase.completed"
)

// PurchaseCompletedEvent is published after a fulfillment transaction commits
type PurchaseCompletedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID       `json:"user_id"`
	CourseID uuid.UUID       `json:"course_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewPurchaseCompletedEvent creates a PurchaseCompletedEvent from a fulfilled purchase
func NewPurchaseCompletedEvent(purchase *Purchase) *PurchaseCompletedEvent {
	return &PurchaseCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseCompleted, purchase.ID, "Purchase"),
		UserID:          purchase.UserID,
		CourseID:        purchase.CourseID,
		Amount:          purchase.Amount,
		Currency:        purchase.Currency,
	}
}
