// Package errors defines the coded errors that cross layer boundaries. Every
// failure a caller can act on carries one of the codes below.
package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an error with a stable machine-readable code and a message fit
// for the user
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
	return &AppError{Code: code, Message: message}
}

// Wrap adds context to err. The code of the nearest AppError in the chain is
// kept; anything else becomes INTERNAL_ERROR.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under an explicit code, replacing whatever code the chain
// carried
func WithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// IsAppError reports whether the chain contains an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the nearest AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"

	// Upload input errors
	CodeNoFile              = "NO_FILE"
	CodeEmptyFile           = "EMPTY_FILE"
	CodeFileTooLarge        = "FILE_TOO_LARGE"
	CodeUnsupportedFileType = "UNSUPPORTED_FILE_TYPE"
	CodeReadError           = "READ_ERROR"
	CodeEmptyContent        = "EMPTY_CONTENT"
	CodeNoData              = "NO_DATA"
	CodeNoHeaders           = "NO_HEADERS"
	CodeNoValidData         = "NO_VALID_DATA"

	// Analysis errors
	CodeDatasetNotFound   = "DATASET_NOT_FOUND"
	CodeAnalysisNotFound  = "ANALYSIS_NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// DatasetNotFound reports an unknown dataset id
func DatasetNotFound(id string) *AppError {
	return New(CodeDatasetNotFound, fmt.Sprintf("dataset %s not found", id))
}

// AnalysisNotFound reports a dataset that has not been analyzed yet
func AnalysisNotFound(id string) *AppError {
	return New(CodeAnalysisNotFound, fmt.Sprintf("no analysis found for dataset %s", id))
}

// UnsupportedFormat reports an unknown export or report format
func UnsupportedFormat(format string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format))
}

// IsInputError reports whether the code belongs to the caller-facing input taxonomy
func IsInputError(code string) bool {
	switch code {
	case CodeInvalidInput, CodeNoFile, CodeEmptyFile, CodeFileTooLarge, CodeUnsupportedFileType,
		CodeReadError, CodeEmptyContent, CodeNoData, CodeNoHeaders, CodeNoValidData, CodeUnsupportedFormat:
		return true
	}
	return false
}

// IsNotFound reports whether the code marks a missing resource
func IsNotFound(code string) bool {
	return code == CodeNotFound || code == CodeDatasetNotFound || code == CodeAnalysisNotFound
}
