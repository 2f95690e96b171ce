package subscription

import (
	"time"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Subscription tracks a buyer's recurring plan at the payment gateway.
// At most one subscription per user is ever effectively current: activating a
// new one expires every other non-terminal subscription of the same user in
// the same local transaction.
type Subscription struct {
	shared.BaseAggregateRoot
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID                 uuid.UUID `gorm:"type:uuid;not null"`
	Status                 Status    `gorm:"size:16;not null;default:'pending';index"`
	ProviderSubscriptionID string    `gorm:"size:64;uniqueIndex"`
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time
	CancelledAt            *time.Time
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a pending subscription awaiting gateway activation
func NewSubscription(userID, planID uuid.UUID, providerSubscriptionID string) (*Subscription, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	return &Subscription{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		UserID:                 userID,
		PlanID:                 planID,
		Status:                 StatusPending,
		ProviderSubscriptionID: providerSubscriptionID,
	}, nil
}

// transition applies a status change through the transition policy
func (s *Subscription) transition(to Status) error {
	if err := AssertTransition(s.Status, to); err != nil {
		return err
	}
	s.Status = to
	return nil
}

// Activate marks the subscription active for the given billing period
func (s *Subscription) Activate(periodStart, periodEnd time.Time) error {
	if err := s.transition(StatusActive); err != nil {
		return err
	}
	s.CurrentPeriodStart = periodStart
	s.CurrentPeriodEnd = periodEnd
	s.CancelledAt = nil
	return nil
}

// Cancel marks the subscription cancelled. Access continues until the period ends.
func (s *Subscription) Cancel(at time.Time) error {
	if err := s.transition(StatusCancelled); err != nil {
		return err
	}
	s.CancelledAt = &at
	return nil
}

// MarkPastDue records a failed recurring charge
func (s *Subscription) MarkPastDue() error {
	return s.transition(StatusPastDue)
}

// Expire ends the subscription
func (s *Subscription) Expire() error {
	return s.transition(StatusExpired)
}

// ExtendPeriod moves the billing period forward after a successful recurring
// charge. A stale past_due status is revived to active through the policy.
func (s *Subscription) ExtendPeriod(nextBillingTime time.Time) error {
	if s.Status == StatusPastDue || s.Status == StatusPending {
		if err := s.transition(StatusActive); err != nil {
			return err
		}
	}
	if s.Status != StatusActive {
		return shared.ErrInvalidState
	}
	s.CurrentPeriodStart = s.CurrentPeriodEnd
	if s.CurrentPeriodStart.IsZero() {
		s.CurrentPeriodStart = time.Now()
	}
	s.CurrentPeriodEnd = nextBillingTime
	return nil
}

// IsCurrent reports whether the subscription grants entitlements at the given time
func (s *Subscription) IsCurrent(at time.Time) bool {
	switch s.Status {
	case StatusActive:
		return true
	case StatusCancelled:
		// Paid-through period still grants access after cancellation.
		return at.Before(s.CurrentPeriodEnd)
	}
	return false
}
