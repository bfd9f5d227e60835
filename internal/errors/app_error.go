package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeStorageError       = "STORAGE_ERROR"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeNoCustomerSelected = "NO_CUSTOMER_SELECTED"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeRemoteWrite        = "REMOTE_WRITE_ERROR"
	ErrCodeUpstreamError      = "UPSTREAM_ERROR"
)

// Checkout steps reported inside REMOTE_WRITE_ERROR details.
const (
	StepBill       = "bill"
	StepOrder      = "order"
	StepOrderLines = "order_lines"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// StorageError covers the local cart store (Redis), not the remote API.
func StorageError(message string) *AppError {
	return NewAppError(ErrCodeStorageError, message, http.StatusInternalServerError)
}

func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Cannot checkout with an empty cart", http.StatusBadRequest)
}

func NoCustomerSelectedError() *AppError {
	return NewAppError(ErrCodeNoCustomerSelected, "A customer must be selected before checkout", http.StatusBadRequest)
}

func CheckoutInProgressError() *AppError {
	return NewAppError(ErrCodeCheckoutInProgress, "A checkout is already in progress for this session", http.StatusConflict)
}

// RemoteWriteError marks a failed create during the checkout sequence. The
// step name tells the operator which records (if any) were left behind.
func RemoteWriteError(step string) *AppError {
	return NewAppError(ErrCodeRemoteWrite, fmt.Sprintf("Checkout failed while creating the %s", step), http.StatusBadGateway).
		WithDetail(fmt.Sprintf("step: %s", step))
}

// UpstreamError covers non-checkout calls to the remote store.
func UpstreamError(message string) *AppError {
	return NewAppError(ErrCodeUpstreamError, message, http.StatusBadGateway)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
