// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Errorf creates a new error with the same code but a formatted message.
func Errorf(base *Error, format string, args ...any) *Error {
	return &Error{
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Predefined errors
var (
	// Data errors
	ErrNoData           = &Error{Code: "NO_DATA", Message: "no data available"}
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "insufficient data for analysis"}

	// Portfolio errors
	ErrInsufficientFunds  = &Error{Code: "INSUFFICIENT_FUNDS", Message: "insufficient cash for order"}
	ErrInsufficientShares = &Error{Code: "INSUFFICIENT_SHARES", Message: "insufficient shares for order"}
	ErrOrderNotFound      = &Error{Code: "ORDER_NOT_FOUND", Message: "order not found"}
	ErrOrderNotPending    = &Error{Code: "ORDER_NOT_PENDING", Message: "order is not pending"}
	ErrInvalidSymbol      = &Error{Code: "INVALID_SYMBOL", Message: "symbol is required"}
	ErrInvalidQuantity    = &Error{Code: "INVALID_QUANTITY", Message: "quantity must be positive"}
	ErrInvalidPrice       = &Error{Code: "INVALID_PRICE", Message: "price must be positive"}
	ErrInvalidSide        = &Error{Code: "INVALID_SIDE", Message: "side must be buy or sell"}

	// Risk errors
	ErrRiskLimitExceeded = &Error{Code: "RISK_LIMIT_EXCEEDED", Message: "risk limit exceeded"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
