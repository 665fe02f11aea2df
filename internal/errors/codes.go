package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error type for bot operations.
type ErrorCode string

const (
	// ErrCodeValidation indicates a malformed or unrecognized callback payload.
	ErrCodeValidation ErrorCode = "VALIDATION"
	// ErrCodeNotFound indicates the requested content idea does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUpstream indicates a generation backend network or HTTP failure.
	ErrCodeUpstream ErrorCode = "UPSTREAM"
	// ErrCodeEmptyResult indicates the generation backend returned no completion.
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
	// ErrCodePersistence indicates a store write failed even after the truncate retry.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
	// ErrCodeState indicates a conversation precondition was not met.
	ErrCodeState ErrorCode = "STATE"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// BotError represents a structured error for bot operations.
type BotError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *BotError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common error types.

// Validation creates a validation error.
func Validation(msg string) *BotError {
	return &BotError{Code: ErrCodeValidation, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *BotError {
	return &BotError{Code: ErrCodeNotFound, Message: msg}
}

// Upstream creates an upstream failure error.
func Upstream(msg string, cause error) *BotError {
	return &BotError{Code: ErrCodeUpstream, Message: msg, Cause: cause}
}

// EmptyResult creates an empty result error.
func EmptyResult(msg string) *BotError {
	return &BotError{Code: ErrCodeEmptyResult, Message: msg}
}

// Persistence creates a persistence error.
func Persistence(msg string, cause error) *BotError {
	return &BotError{Code: ErrCodePersistence, Message: msg, Cause: cause}
}

// State creates a conversation state error.
func State(msg string) *BotError {
	return &BotError{Code: ErrCodeState, Message: msg}
}

// Timeout creates a timeout error.
func Timeout(msg string) *BotError {
	return &BotError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *BotError {
	return &BotError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error (or any error it wraps) carries a specific code.
func IsCode(err error, code ErrorCode) bool {
	var botErr *BotError
	if stderrors.As(err, &botErr) {
		return botErr.Code == code
	}
	return false
}

// CodeOf extracts the error code from any error, unwrapping as needed.
// Returns the provided default code if no BotError is found.
func CodeOf(err error, defaultCode ErrorCode) ErrorCode {
	var botErr *BotError
	if stderrors.As(err, &botErr) {
		return botErr.Code
	}
	return defaultCode
}
