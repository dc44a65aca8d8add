package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the failure taxonomy. Only ErrSetup is fatal to the
// process; everything else is recovered at the action boundary and
// converted into a reported result.
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Setup errors: a prerequisite tool is unavailable and uninstallable.
	ErrSetup ErrorCode = "SETUP"

	// Mutation errors: an individual action's underlying operation
	// reported failure. Recovered locally, execution continues.
	ErrMutation ErrorCode = "MUTATION"

	// Conflict errors
	ErrConflictDeclined ErrorCode = "CONFLICT_DECLINED"
	ErrConflictRemoval  ErrorCode = "CONFLICT_REMOVAL"

	// Cancellation: the operator aborted an interactive prompt. Ends the
	// current loop gracefully; not treated as an error by the CLI.
	ErrCancelled ErrorCode = "CANCELLED"

	// Config errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Host file errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"

	// Command execution errors
	ErrCommandRun ErrorCode = "COMMAND_RUN"
)

// RecipeError represents a structured error with code and details
type RecipeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RecipeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RecipeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RecipeError) Is(target error) bool {
	var targetErr *RecipeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RecipeError with the given code and message
func New(code ErrorCode, message string) *RecipeError {
	return &RecipeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RecipeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RecipeError {
	return &RecipeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RecipeError
func Wrap(err error, code ErrorCode, message string) *RecipeError {
	if err == nil {
		return nil
	}
	return &RecipeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RecipeError {
	if err == nil {
		return nil
	}
	return &RecipeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RecipeError) WithDetail(key string, value interface{}) *RecipeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var recipeErr *RecipeError
	if errors.As(err, &recipeErr) {
		return recipeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RecipeError
func GetErrorCode(err error) ErrorCode {
	var recipeErr *RecipeError
	if errors.As(err, &recipeErr) {
		return recipeErr.Code
	}
	return ErrUnknown
}

// IsFatal reports whether err must abort the whole process. Only setup
// failures qualify; mutation failures, declined conflicts and
// cancellations are handled at the action boundary.
func IsFatal(err error) bool {
	return IsErrorCode(err, ErrSetup)
}

// IsCancellation reports whether err is the operator aborting a prompt.
func IsCancellation(err error) bool {
	return IsErrorCode(err, ErrCancelled)
}
