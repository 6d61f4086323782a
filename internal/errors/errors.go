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

// Is reports whether target is an AppError carrying the same code, so
// errors.Is(err, ErrInsufficientData) matches any insufficient-data error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
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

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeFileLoad         = "FILE_LOAD_ERROR"
	CodeParse            = "PARSE_ERROR"
	CodeEmptyFilter      = "EMPTY_FILTER"
	CodeMissingKey       = "MISSING_KEY"
	CodeInsufficientData = "INSUFFICIENT_DATA"
)

// Sentinels for errors.Is checks; only the code is compared.
var (
	ErrFileLoad         = New(CodeFileLoad, "file load failed")
	ErrParse            = New(CodeParse, "parse failed")
	ErrEmptyFilter      = New(CodeEmptyFilter, "filter matched no rows")
	ErrInsufficientData = New(CodeInsufficientData, "insufficient data")
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func FileLoad(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileLoad,
		Message: fmt.Sprintf("failed to load %s", path),
		Cause:   cause,
	}
}

func Parse(field, value string, cause error) *AppError {
	return &AppError{
		Code:    CodeParse,
		Message: fmt.Sprintf("cannot parse %s value %q", field, value),
		Cause:   cause,
	}
}

func EmptyFilter(column, value string) *AppError {
	return New(CodeEmptyFilter, fmt.Sprintf("no rows where %s = %q", column, value))
}

func MissingKey(key string) *AppError {
	return New(CodeMissingKey, fmt.Sprintf("missing grouping key %s", key))
}

func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}
