package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ValidationError   ErrorCode = "validation_error"
	AccountNotFound   ErrorCode = "account_not_found"
	InsufficientFunds ErrorCode = "insufficient_funds"
	StorageFailure    ErrorCode = "storage_failure"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// CodeOf extracts the taxonomy code from any error. Errors that did not come
// from this package (driver failures and the like) count as storage failures.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return StorageFailure
}

// IsStorageFailure reports whether err is unrecoverable at the menu level and
// must terminate the session.
func IsStorageFailure(err error) bool {
	return err != nil && CodeOf(err) == StorageFailure
}

// Predefined errors for common cases
var (
	ErrAccountNotFound   = NewAppError(AccountNotFound, "account not found")
	ErrInsufficientFunds = NewAppError(InsufficientFunds, "insufficient funds")
	ErrInvalidAmount     = NewAppError(ValidationError, "amount must be positive")
	ErrNegativeBalance   = NewAppError(ValidationError, "initial balance cannot be negative")
)
