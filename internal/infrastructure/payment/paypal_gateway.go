package payment

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/edustack/backend/internal/domain/shared"
	"github.com/edustack/backend/internal/infrastructure/config"
	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayPalGateway implements Gateway on the PayPal Orders v2 and Billing APIs
type PayPalGateway struct {
	client    *paypal.Client
	webhookID string
	returnURL string
	cancelURL string
	logger    *zap.Logger
}

// NewPayPalGateway creates a PayPal gateway and acquires an access token
func NewPayPalGateway(cfg *config.PayPalConfig, logger *zap.Logger) (*PayPalGateway, error) {
	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(cfg.ClientID, cfg.ClientSecret, base)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal client: %w", err)
	}
	if _, err := client.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to acquire paypal access token: %w", err)
	}

	return &PayPalGateway{
		client:    client,
		webhookID: cfg.WebhookID,
		returnURL: cfg.ReturnURL,
		cancelURL: cfg.CancelURL,
		logger:    logger,
	}, nil
}

// CreateOrder creates a CAPTURE-intent order for the given amount
func (g *PayPalGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, referenceID, description string) (*Order, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: referenceID,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: strings.ToUpper(currency),
				Value:    amount.StringFixed(2),
			},
			Description: description,
		},
	}
	appContext := &paypal.ApplicationContext{
		ReturnURL: g.returnURL,
		CancelURL: g.cancelURL,
	}

	order, err := g.client.CreateOrder(ctx, "CAPTURE", units, nil, appContext)
	if err != nil {
		g.logger.Error("paypal create order failed",
			zap.String("reference_id", referenceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}

	return &Order{
		ID:          order.ID,
		Status:      order.Status,
		ApprovalURL: approvalURL(order),
	}, nil
}

// CaptureOrder captures an approved order
func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	resp, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		g.logger.Error("paypal capture failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}

	capture := &Capture{OrderID: resp.ID, Status: resp.Status}
	for _, unit := range resp.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, c := range unit.Payments.Captures {
			capture.CaptureID = c.ID
			break
		}
	}
	return capture, nil
}

// CancelSubscription cancels a subscription at PayPal
func (g *PayPalGateway) CancelSubscription(ctx context.Context, providerSubscriptionID, reason string) error {
	if err := g.client.CancelSubscription(ctx, providerSubscriptionID, reason); err != nil {
		g.logger.Error("paypal subscription cancel failed",
			zap.String("subscription_id", providerSubscriptionID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}
	return nil
}

// VerifyWebhookSignature verifies the transmission headers of an inbound
// webhook against PayPal's verification endpoint
func (g *PayPalGateway) VerifyWebhookSignature(ctx context.Context, req *http.Request) error {
	resp, err := g.client.VerifyWebhookSignature(ctx, req, g.webhookID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}
	if resp.VerificationStatus != "SUCCESS" {
		return shared.ErrSignatureInvalid
	}
	return nil
}

// approvalURL extracts the buyer approval link from an order
func approvalURL(order *paypal.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}

var _ Gateway = (*PayPalGateway)(nil)
