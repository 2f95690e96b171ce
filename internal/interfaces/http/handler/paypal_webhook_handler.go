package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	webhookapp "github.com/edustack/backend/internal/application/webhook"
	"github.com/edustack/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// Maximum webhook payload size (64KB - PayPal webhook events are small)
const maxWebhookPayloadSize = 65536

// PayPalWebhookHandler handles PayPal webhook endpoints.
// These endpoints are called by PayPal and do not require authentication;
// authenticity comes from signature verification inside the ingestor.
type PayPalWebhookHandler struct {
	BaseHandler
	ingestor *webhookapp.Ingestor
}

// NewPayPalWebhookHandler creates a new PayPalWebhookHandler
func NewPayPalWebhookHandler(ingestor *webhookapp.Ingestor) *PayPalWebhookHandler {
	return &PayPalWebhookHandler{ingestor: ingestor}
}

// RegisterRoutes registers webhook routes
func (h *PayPalWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/paypal", h.HandlePayPalWebhook)
}

// PayPalWebhookResponse represents the response for a PayPal webhook delivery
type PayPalWebhookResponse struct {
	Received  bool   `json:"received" example:"true"`
	EventID   string `json:"event_id,omitempty" example:"WH-2WR32451HC0233532"`
	EventType string `json:"event_type,omitempty" example:"PAYMENT.CAPTURE.COMPLETED"`
	Outcome   string `json:"outcome,omitempty" example:"processed"`
	Message   string `json:"message,omitempty"`
}

// HandlePayPalWebhook godoc
//
//	@ID				handlePayPalWebhook
//	@Summary		Handle PayPal webhook
//	@Description	Receive and process webhook events from PayPal for payments and subscriptions
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			Paypal-Transmission-Id	header		string					true	"PayPal delivery id"
//	@Success		200						{object}	PayPalWebhookResponse	"Event processed, duplicate or ignored"
//	@Failure		400						{object}	PayPalWebhookResponse	"Malformed payload"
//	@Failure		401						{object}	PayPalWebhookResponse	"Invalid signature"
//	@Failure		413						{object}	PayPalWebhookResponse	"Payload too large"
//	@Failure		500						{object}	PayPalWebhookResponse	"Processing failed, provider should redeliver"
//	@Router			/webhooks/paypal [post]
func (h *PayPalWebhookHandler) HandlePayPalWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, PayPalWebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, PayPalWebhookResponse{
			Received: false,
			Message:  "Payload too large",
		})
		return
	}

	// Signature verification re-reads the request body and sends it to the
	// provider's verification API alongside the transmission headers.
	c.Request.Body = io.NopCloser(bytes.NewReader(payload))

	result, err := h.ingestor.Ingest(c.Request.Context(), c.Request, payload)
	if err != nil {
		if errors.Is(err, shared.ErrSignatureInvalid) {
			c.JSON(http.StatusUnauthorized, PayPalWebhookResponse{
				Received: false,
				Message:  "Webhook signature verification failed",
			})
			return
		}
		// A failed handler is not acknowledged. Recovery runs through the
		// sibling events for the same order and the redirect-capture path,
		// both idempotent against the committed ledger row.
		c.JSON(http.StatusInternalServerError, PayPalWebhookResponse{
			Received: false,
			Message:  "Webhook processing failed",
		})
		return
	}

	c.JSON(http.StatusOK, PayPalWebhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Outcome:   string(result.Outcome),
	})
}
