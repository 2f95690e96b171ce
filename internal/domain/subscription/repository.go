package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for subscriptions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindByProviderSubscriptionID(ctx context.Context, providerID string) (*Subscription, error)
	FindCurrentByUser(ctx context.Context, userID uuid.UUID) (*Subscription, error)
	FindNonTerminalByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	Save(ctx context.Context, sub *Subscription) error

	// SaveActivationReplacing persists the newly activated subscription and
	// transitions the displaced siblings to expired in one transaction.
	SaveActivationReplacing(ctx context.Context, activated *Subscription, displaced []Subscription) error
}

// PlanRepository defines persistence operations for plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	FindByProviderPlanID(ctx context.Context, providerPlanID string) (*Plan, error)
	Save(ctx context.Context, plan *Plan) error
}
