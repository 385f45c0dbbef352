package services

import (
	"errors"

	apperrors "github.com/formlab/formbuilder-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Form specific errors
	ErrFormNotFound     = errors.New("form not found")
	ErrFormNoQuestions  = errors.New("form must have at least one question")
	ErrFormTitleMissing = errors.New("form title is required")

	// Response specific errors
	ErrResponseNotFound  = errors.New("response not found")
	ErrResponseNoAnswers = errors.New("response must contain at least one answer")

	// Upload specific errors
	ErrUploadNoFile    = errors.New("no file uploaded")
	ErrUploadNotImage  = errors.New("only image files are allowed")
	ErrUploadTooLarge  = errors.New("file exceeds the size limit")
	ErrAssetNotStored  = errors.New("failed to store asset")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrFormNoQuestions) ||
		errors.Is(err, ErrFormTitleMissing) ||
		errors.Is(err, ErrResponseNoAnswers) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}
