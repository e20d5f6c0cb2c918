package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal = "ERR_INTERNAL"
	ErrCodeUnknown  = "ERR_UNKNOWN"
)

// Request error codes
const (
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON   = "ERR_INVALID_JSON"
	ErrCodeInvalidShop   = "ERR_INVALID_SHOP"
	ErrCodeBodyTooLarge  = "ERR_BODY_TOO_LARGE"
	ErrCodeRateLimited   = "ERR_RATE_LIMITED"
	ErrCodeRouteNotFound = "ERR_ROUTE_NOT_FOUND"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
)

// Ledger and directory codes are passed through unchanged so clients can
// tell a policy violation from a malformed request.
const (
	CodeDiscountLimitExceeded = "DISCOUNT_LIMIT_EXCEEDED"
	CodeDiscountExceedsAmount = "DISCOUNT_EXCEEDS_AMOUNT"
	CodeUnknownStaff          = "UNKNOWN_STAFF"
	CodeAlreadySettled        = "ALREADY_SETTLED"
	CodeNotCreditSale         = "NOT_CREDIT_SALE"
	CodePasscodeInUse         = "PASSCODE_IN_USE"
	CodeItemActive            = "ITEM_ACTIVE"
	CodeItemInactive          = "ITEM_INACTIVE"
	CodeStaffActive           = "STAFF_ACTIVE"
	CodeStaffInactive         = "STAFF_INACTIVE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeUnknown:  http.StatusInternalServerError,

	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeInvalidShop:   http.StatusBadRequest,
	ErrCodeBodyTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
	ErrCodeRouteNotFound: http.StatusNotFound,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	CodePasscodeInUse: http.StatusConflict,

	CodeDiscountLimitExceeded: http.StatusUnprocessableEntity,
	CodeDiscountExceedsAmount: http.StatusUnprocessableEntity,
	CodeUnknownStaff:          http.StatusUnprocessableEntity,
	CodeAlreadySettled:        http.StatusUnprocessableEntity,
	CodeNotCreditSale:         http.StatusUnprocessableEntity,
	CodeItemActive:            http.StatusUnprocessableEntity,
	CodeItemInactive:          http.StatusUnprocessableEntity,
	CodeStaffActive:           http.StatusUnprocessableEntity,
	CodeStaffInactive:         http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are field validation failures and answer 400;
// anything else answers 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GenericErrorCodeMapping maps the shared domain codes to API codes
var GenericErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
}

// NormalizeErrorCode converts a shared domain code to its API form.
// Module-specific codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := GenericErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
