package handler

import (
	commerceapp "github.com/edustack/backend/internal/application/commerce"
	"github.com/edustack/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutHandler handles course purchase endpoints
type CheckoutHandler struct {
	BaseHandler
	checkout *commerceapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *commerceapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/orders", h.CreateOrder)
		checkout.POST("/orders/:id/capture", h.CaptureOrder)
	}
}

// CreateOrderRequest is the payload for starting a checkout
type CreateOrderRequest struct {
	CourseID   string `json:"course_id" binding:"required,uuid"`
	CouponCode string `json:"coupon_code"`
}

// CreateOrderResponse describes the gateway order awaiting buyer approval
type CreateOrderResponse struct {
	PurchaseID      string          `json:"purchase_id"`
	ProviderOrderID string          `json:"provider_order_id"`
	ApprovalURL     string          `json:"approval_url"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// CreateOrder godoc
//
//	@ID				createCheckoutOrder
//	@Summary		Start a course checkout
//	@Description	Create a payment gateway order and the pending purchase for a course
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Checkout request"
//	@Success		201		{object}	dto.Response{data=CreateOrderResponse}
//	@Failure		400		{object}	dto.Response	"Invalid request"
//	@Failure		409		{object}	dto.Response	"Course already purchased"
//	@Failure		422		{object}	dto.Response	"Course unavailable or coupon invalid"
//	@Router			/checkout/orders [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidInput, "Invalid course id")
		return
	}

	result, err := h.checkout.CreateOrder(c.Request.Context(), userID, courseID, req.CouponCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateOrderResponse{
		PurchaseID:      result.PurchaseID.String(),
		ProviderOrderID: result.ProviderOrderID,
		ApprovalURL:     result.ApprovalURL,
		Amount:          result.Amount,
		Currency:        result.Currency,
	})
}

// CaptureOrderResponse reports the fulfillment outcome of a capture
type CaptureOrderResponse struct {
	PurchaseID string `json:"purchase_id"`
	Applied    bool   `json:"applied"`
}

// CaptureOrder godoc
//
//	@ID				captureCheckoutOrder
//	@Summary		Capture an approved order
//	@Description	Capture the gateway order after buyer approval and fulfill the purchase
//	@Tags			checkout
//	@Produce		json
//	@Param			id	path		string	true	"Gateway order id"
//	@Success		200	{object}	dto.Response{data=CaptureOrderResponse}
//	@Failure		404	{object}	dto.Response	"Unknown order"
//	@Failure		422	{object}	dto.Response	"Capture incomplete or course sold out"
//	@Router			/checkout/orders/{id}/capture [post]
func (h *CheckoutHandler) CaptureOrder(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.checkout.CaptureOrder(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CaptureOrderResponse{
		PurchaseID: result.PurchaseID.String(),
		Applied:    result.Applied,
	})
}
