package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound               = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists          = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput           = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict    = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState           = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrOutOfStock             = NewDomainError("OUT_OF_STOCK", "No seats remaining for this course")
	ErrInvalidStateTransition = NewDomainError("INVALID_STATE_TRANSITION", "Subscription status change is not allowed")
	ErrEntitlementDenied      = NewDomainError("ENTITLEMENT_DENIED", "No qualifying purchase or subscription for this achievement")
	ErrDuplicateEvent         = NewDomainError("DUPLICATE_EVENT", "Event has already been processed")
	ErrSignatureInvalid       = NewDomainError("SIGNATURE_INVALID", "Webhook signature verification failed")
	ErrGatewayUnavailable     = NewDomainError("GATEWAY_UNAVAILABLE", "Payment gateway request failed")
	ErrCouponInvalid          = NewDomainError("COUPON_INVALID", "Coupon is not valid for this order")
)
