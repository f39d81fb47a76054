package shared

import (
	"errors"
	"fmt"
)

// DomainError is the error type surfaced by every engine operation.
// Code identifies the error kind for callers; Message is human readable.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the recoverable error kinds every operation can produce.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeConflict               = "CONFLICT"
	CodeValidation             = "VALIDATION_ERROR"
	CodeBusinessRule           = "BUSINESS_RULE_VIOLATION"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found in tenant scope")
	ErrAlreadyExists = NewDomainError(CodeConflict, "Resource already exists")
	ErrStaleVersion  = NewDomainError(CodeConflict, "Resource was modified by another transaction")
)

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewConflictError creates a CONFLICT error with the given message
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewBusinessRuleError creates a BUSINESS_RULE_VIOLATION with the given message
func NewBusinessRuleError(message string) *DomainError {
	return NewDomainError(CodeBusinessRule, message)
}

// NewInvalidTransitionError reports a forbidden document state transition.
func NewInvalidTransitionError(document, from, to string) *DomainError {
	return NewDomainError(CodeInvalidStateTransition,
		fmt.Sprintf("%s cannot transition from %s to %s", document, from, to))
}

// CodeOf returns the domain error code of err, or an empty string for non-domain errors.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsInvalidTransition reports whether err is an INVALID_STATE_TRANSITION domain error.
func IsInvalidTransition(err error) bool {
	return CodeOf(err) == CodeInvalidStateTransition
}

// IsConflict reports whether err is a CONFLICT domain error.
func IsConflict(err error) bool {
	return CodeOf(err) == CodeConflict
}
