package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized     = "ERR_UNAUTHORIZED"
	ErrCodeForbidden        = "ERR_FORBIDDEN"
	ErrCodeSignatureInvalid = "ERR_SIGNATURE_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeOutOfStock        = "ERR_OUT_OF_STOCK"
	ErrCodeCouponInvalid     = "ERR_COUPON_INVALID"
	ErrCodeEntitlementDenied = "ERR_ENTITLEMENT_DENIED"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
)

// Upstream error codes
const (
	ErrCodeGatewayUnavailable = "ERR_GATEWAY_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeSignatureInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeOutOfStock:        http.StatusUnprocessableEntity,
	ErrCodeCouponInvalid:     http.StatusUnprocessableEntity,
	ErrCodeEntitlementDenied: http.StatusForbidden,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,

	ErrCodeGatewayUnavailable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":     ErrCodeConflict,
	"OUT_OF_STOCK":             ErrCodeOutOfStock,
	"COUPON_INVALID":           ErrCodeCouponInvalid,
	"ENTITLEMENT_DENIED":       ErrCodeEntitlementDenied,
	"INVALID_STATE_TRANSITION": ErrCodeInvalidState,
	"SIGNATURE_INVALID":        ErrCodeSignatureInvalid,
	"GATEWAY_UNAVAILABLE":      ErrCodeGatewayUnavailable,
	"DUPLICATE_EVENT":          ErrCodeConflict,
	"COURSE_UNAVAILABLE":       ErrCodeBusinessRule,
	"CAPTURE_INCOMPLETE":       ErrCodeBusinessRule,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes pass through unchanged and resolve to 500.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
