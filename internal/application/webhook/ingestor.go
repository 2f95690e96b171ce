package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	appcommerce "github.com/edustack/backend/internal/application/commerce"
	appsubscription "github.com/edustack/backend/internal/application/subscription"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/domain/webhook"
	"github.com/edustack/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// Provider is the ledger namespace for PayPal events
const Provider = "paypal"

// Outcome classifies how an inbound event was handled. Every outcome except
// a processing error is acknowledged with a success response so the provider
// stops redelivering.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
)

// IngestResult reports the handling of one webhook delivery
type IngestResult struct {
	EventID   string  `json:"event_id"`
	EventType string  `json:"event_type"`
	Outcome   Outcome `json:"outcome"`
	Message   string  `json:"message,omitempty"`
}

// envelope is the provider's webhook event wrapper
type envelope struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

// resource carries the union of resource fields the dispatcher reads
type resource struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	StartTime          string `json:"start_time"`
	BillingAgreementID string `json:"billing_agreement_id"`
	BillingInfo        struct {
		NextBillingTime string `json:"next_billing_time"`
	} `json:"billing_info"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// Ingestor is the webhook entry point: it verifies authenticity, gates the
// event through the idempotency ledger and dispatches to fulfillment or the
// subscription lifecycle.
type Ingestor struct {
	gateway     payment.Gateway
	ledger      webhook.Ledger
	fastPath    shared.IdempotencyStore
	fastPathTTL time.Duration
	fulfillment *appcommerce.FulfillmentService
	checkout    *appcommerce.CheckoutService
	lifecycle   *appsubscription.LifecycleService
	logger      *zap.Logger
}

// IngestorConfig contains dependencies for Ingestor
type IngestorConfig struct {
	Gateway payment.Gateway
	Ledger  webhook.Ledger
	// FastPath is an optional advisory duplicate filter in front of the
	// ledger. The ledger's uniqueness constraint is the correctness layer.
	FastPath    shared.IdempotencyStore
	FastPathTTL time.Duration
	Fulfillment *appcommerce.FulfillmentService
	Checkout    *appcommerce.CheckoutService
	Lifecycle   *appsubscription.LifecycleService
	Logger      *zap.Logger
}

// NewIngestor creates a new Ingestor
func NewIngestor(cfg IngestorConfig) *Ingestor {
	return &Ingestor{
		gateway:     cfg.Gateway,
		ledger:      cfg.Ledger,
		fastPath:    cfg.FastPath,
		fastPathTTL: cfg.FastPathTTL,
		fulfillment: cfg.Fulfillment,
		checkout:    cfg.Checkout,
		lifecycle:   cfg.Lifecycle,
		logger:      cfg.Logger,
	}
}

// Ingest processes one webhook delivery. The request is needed alongside the
// payload because signature verification covers the transmission headers.
func (s *Ingestor) Ingest(ctx context.Context, req *http.Request, payload []byte) (*IngestResult, error) {
	if err := s.gateway.VerifyWebhookSignature(ctx, req); err != nil {
		s.logger.Warn("webhook signature rejected", zap.Error(err))
		return nil, err
	}

	var evt envelope
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	var res resource
	if len(evt.Resource) > 0 {
		if err := json.Unmarshal(evt.Resource, &res); err != nil {
			return nil, fmt.Errorf("malformed webhook resource: %w", err)
		}
	}

	transmissionID := req.Header.Get("Paypal-Transmission-Id")
	eventKey := webhook.StableEventKey(evt.ID, evt.EventType, res.ID, transmissionID)

	result := &IngestResult{EventID: eventKey, EventType: evt.EventType}

	if s.fastPath != nil {
		seen, err := s.fastPath.IsProcessed(ctx, Provider+":"+eventKey)
		if err != nil {
			s.logger.Warn("idempotency fast path unavailable, falling through to ledger", zap.Error(err))
		} else if seen {
			result.Outcome = OutcomeDuplicate
			return result, nil
		}
	}

	registered, err := s.ledger.Register(ctx, Provider, eventKey, evt.EventType, payload)
	if err != nil {
		return nil, err
	}
	if !registered {
		s.logger.Info("duplicate webhook delivery",
			zap.String("event_id", eventKey),
			zap.String("event_type", evt.EventType),
		)
		result.Outcome = OutcomeDuplicate
		s.markFastPath(ctx, eventKey)
		return result, nil
	}

	outcome, err := s.dispatch(ctx, evt.EventType, &res)
	if err != nil {
		s.logger.Error("webhook processing failed",
			zap.String("event_id", eventKey),
			zap.String("event_type", evt.EventType),
			zap.Error(err),
		)
		return nil, err
	}

	result.Outcome = outcome
	s.markFastPath(ctx, eventKey)
	return result, nil
}

// dispatch routes a registered event to its handler. Unknown event types and
// events referencing unknown local records are acknowledged, not failed, so
// the provider does not retry what we will never process.
func (s *Ingestor) dispatch(ctx context.Context, eventType string, res *resource) (Outcome, error) {
	var err error
	outcome := OutcomeProcessed

	switch eventType {
	case "CHECKOUT.ORDER.APPROVED":
		_, err = s.checkout.CaptureOrder(ctx, res.ID)

	case "PAYMENT.CAPTURE.COMPLETED":
		orderID := res.SupplementaryData.RelatedIDs.OrderID
		if orderID == "" {
			s.logger.Warn("capture event without related order id", zap.String("capture_id", res.ID))
			return OutcomeIgnored, nil
		}
		_, err = s.fulfillment.FulfillByProviderOrder(ctx, orderID, res.ID)

	case "BILLING.SUBSCRIPTION.ACTIVATED":
		start := parseTime(res.StartTime)
		end := parseTime(res.BillingInfo.NextBillingTime)
		err = s.lifecycle.HandleActivated(ctx, res.ID, start, end)

	case "BILLING.SUBSCRIPTION.CANCELLED":
		err = s.lifecycle.HandleCancelled(ctx, res.ID)

	case "BILLING.SUBSCRIPTION.SUSPENDED":
		err = s.lifecycle.HandleSuspended(ctx, res.ID)

	case "BILLING.SUBSCRIPTION.EXPIRED":
		err = s.lifecycle.HandleExpired(ctx, res.ID)

	case "PAYMENT.SALE.COMPLETED":
		if res.BillingAgreementID == "" {
			return OutcomeIgnored, nil
		}
		err = s.lifecycle.HandleRenewed(ctx, res.BillingAgreementID, parseTime(res.BillingInfo.NextBillingTime))

	default:
		s.logger.Debug("unhandled webhook event type", zap.String("event_type", eventType))
		return OutcomeIgnored, nil
	}

	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// The referenced purchase or subscription is not ours (or arrived
			// before local setup). Acknowledge so the provider stops retrying.
			s.logger.Warn("webhook references unknown local record, acknowledging",
				zap.String("event_type", eventType),
			)
			return OutcomeIgnored, nil
		}
		return outcome, err
	}
	return outcome, nil
}

func (s *Ingestor) markFastPath(ctx context.Context, eventKey string) {
	if s.fastPath == nil {
		return
	}
	if _, err := s.fastPath.MarkProcessed(ctx, Provider+":"+eventKey, s.fastPathTTL); err != nil {
		s.logger.Warn("failed to mark event on idempotency fast path", zap.Error(err))
	}
}

// parseTime parses the provider's RFC3339 timestamps, zero on failure
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
