package errors

import (
	"net/http"

	"artisan/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// Retryable is implemented by errors the caller may retry with backoff.
type Retryable interface {
	Retryable() bool
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError carrying the same business code, so errors derived
// with WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Caller errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrSellerNotFound = NewBaseError(
		http.StatusNotFound,
		"SELLER_NOT_FOUND",
		"Seller profile not found",
		"",
	)

	ErrProductOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"PRODUCT_OWNERSHIP_VIOLATION",
		"Not authorized to modify this product",
		"",
	)

	ErrStaleWriteConflict = NewBaseError(
		http.StatusConflict,
		"STALE_WRITE_CONFLICT",
		"The resource was modified concurrently, please retry",
		"",
	)

	// ErrDuplicateLike is returned by a store when the (user, product) like already exists.
	ErrDuplicateLike = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_LIKE",
		"Like already recorded",
		"",
	)

	// Cart errors
	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Not enough stock for this product",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StoreUnavailableError is returned when the persisted store failed or did not
// answer in time. It is retryable.
type StoreUnavailableError struct {
	err     error
	details string
}

// NewStoreUnavailableError creates a store infrastructure error
func NewStoreUnavailableError(err error, details string) AppError {
	return &StoreUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	if e.err == nil {
		return "store unavailable: " + e.details
	}

	return errors.Wrap(e.err, "store unavailable: "+e.details).Error()
}

// Unwrap exposes the underlying store error
func (e *StoreUnavailableError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreUnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *StoreUnavailableError) ErrorCode() string {
	return "STORE_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *StoreUnavailableError) Message() string {
	return "Service temporarily unavailable, please retry"
}

// Details returns detailed error information
func (e *StoreUnavailableError) Details() string {
	return e.details
}

// Retryable marks the error as safe to retry
func (e *StoreUnavailableError) Retryable() bool {
	return true
}

// IsRetryable reports whether any error in err's chain is retryable.
func IsRetryable(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}

	return false
}
