package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the code of the first AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInternalError = "INTERNAL_ERROR"
	CodeParseError    = "PARSE_ERROR"
	CodeSchemaError   = "SCHEMA_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// ParseError reports bytes that could not be read as a spreadsheet.
func ParseError(cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: "could not read spreadsheet",
		Cause:   cause,
	}
}

// SchemaError reports a required column that is absent from the header row.
func SchemaError(column string) *AppError {
	return New(CodeSchemaError, fmt.Sprintf("the spreadsheet does not have a '%s' column", column))
}

func IsParseError(err error) bool {
	return GetCode(err) == CodeParseError
}

func IsSchemaError(err error) bool {
	return GetCode(err) == CodeSchemaError
}
