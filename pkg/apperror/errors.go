package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ---- Webhook pipeline (WHK) ----

const (
	CodeConfig        = "WHK_001"
	CodeVerification  = "WHK_002"
	CodeMalformed     = "WHK_003"
	CodeUnresolved    = "WHK_004"
	CodeDownstream    = "WHK_005"
	CodeProviderError = "PRV_001"
)

// ErrConfig reports a missing or unusable webhook secret.
func ErrConfig(message string, err error) *AppError {
	return Wrap(CodeConfig, message, http.StatusUnauthorized, err)
}

// ErrVerification reports a webhook that failed header, timestamp or signature checks.
func ErrVerification(message string) *AppError {
	return New(CodeVerification, message, http.StatusUnauthorized)
}

// ErrMalformedPayload reports a verified webhook whose body cannot be interpreted.
func ErrMalformedPayload(message string, err error) *AppError {
	return Wrap(CodeMalformed, message, http.StatusBadRequest, err)
}

// ErrUnresolved reports an event that maps to no local record.
func ErrUnresolved(message string) *AppError {
	return New(CodeUnresolved, message, http.StatusOK)
}

// ErrDownstreamLookup reports a failed secondary lookup or bookkeeping step.
func ErrDownstreamLookup(message string, err error) *AppError {
	return Wrap(CodeDownstream, message, http.StatusOK, err)
}

// ---- ID mappings (MAP) ----

func ErrMappingNotDeletable(kind string) *AppError {
	return New("MAP_001", fmt.Sprintf("%s mappings cannot be deleted", kind), http.StatusBadRequest)
}

func ErrUnknownMappingKind(kind string) *AppError {
	return New("MAP_002", fmt.Sprintf("unknown mapping kind %q", kind), http.StatusBadRequest)
}

// ---- Checkout (CHK) ----

func ErrAPIKeyMissing(mode string) *AppError {
	return New("CHK_001", fmt.Sprintf("%s API key is not configured", mode), http.StatusPreconditionFailed)
}

func ErrMultipleCoupons() *AppError {
	return New("CHK_002", "Multiple coupon codes are not supported", http.StatusUnprocessableEntity)
}

func ErrUnsupportedCoupon() *AppError {
	return New("CHK_003", "Only percentage discount codes are supported", http.StatusUnprocessableEntity)
}

func ErrInvalidProviderResponse(operation string) *AppError {
	return New("CHK_004", fmt.Sprintf("Invalid provider response for %s", operation), http.StatusBadGateway)
}

func ErrNotFound(entity string) *AppError {
	return New("CHK_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Payments provider (PRV) ----

func ErrProvider(message string, err error) *AppError {
	return Wrap(CodeProviderError, message, http.StatusBadGateway, err)
}

func ErrProviderRateLimited(err error) *AppError {
	return Wrap("PRV_002", "Payments provider rate limit exceeded", http.StatusServiceUnavailable, err)
}

func ErrProviderUnavailable(err error) *AppError {
	return Wrap("PRV_003", "Payments provider unavailable", http.StatusServiceUnavailable, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrAdminDisabled() *AppError {
	return New("AUTH_002", "Admin access is not configured", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrCacheError(err error) *AppError {
	return Wrap("SYS_002", "Cache unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("REQ_001", message, http.StatusBadRequest)
}
