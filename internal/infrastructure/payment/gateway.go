package payment

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// Order is a gateway checkout order awaiting buyer approval
type Order struct {
	ID          string
	Status      string
	ApprovalURL string
}

// Capture is the result of capturing an approved order
type Capture struct {
	OrderID   string
	CaptureID string
	Status    string
}

// Gateway abstracts the payment provider. Subscription state changes arrive
// through webhooks carrying the full resource, so the gateway only needs the
// imperative operations: order creation, capture, cancellation and inbound
// signature verification.
type Gateway interface {
	// CreateOrder creates a checkout order the buyer approves on the
	// provider's site. referenceID ties the order back to the local purchase.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, referenceID, description string) (*Order, error)

	// CaptureOrder captures an approved order, completing the payment
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)

	// CancelSubscription cancels a subscription at the provider
	CancelSubscription(ctx context.Context, providerSubscriptionID, reason string) error

	// VerifyWebhookSignature checks the transmission headers of an inbound
	// webhook request against the provider's verification API. Returns
	// shared.ErrSignatureInvalid when the provider rejects the signature.
	VerifyWebhookSignature(ctx context.Context, req *http.Request) error
}
