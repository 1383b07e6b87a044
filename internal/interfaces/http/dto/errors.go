package dto

import (
	"net/http"
	"strings"
)

// Shared error codes used directly by the HTTP layer
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps domain and service error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Resource lookups
	"NOT_FOUND":          http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"CATEGORY_NOT_FOUND": http.StatusNotFound,
	"SUPPLIER_NOT_FOUND": http.StatusNotFound,
	"USER_NOT_FOUND":     http.StatusNotFound,
	"ALERT_NOT_FOUND":    http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,

	// Authentication
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusLocked,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"FORBIDDEN":           http.StatusForbidden,

	// Input
	"BAD_REQUEST":   http.StatusBadRequest,
	"INVALID_INPUT": http.StatusBadRequest,

	// Rate limiting
	"RATE_LIMITED": http.StatusTooManyRequests,

	// Infrastructure
	"PERSISTENCE_FAILURE": http.StatusInternalServerError,
	"INTERNAL_ERROR":      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes not explicitly mapped fall back on naming conventions:
// *_NOT_FOUND is 404, INVALID_* and ALREADY_* are 400, anything
// else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
