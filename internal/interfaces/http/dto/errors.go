package dto

import (
	"net/http"

	"github.com/comercia/backend/internal/domain/shared"
)

// Transport-level error codes. Domain codes come from shared.DomainError.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeInternal:     http.StatusInternalServerError,

	shared.CodeValidation:             http.StatusBadRequest,
	shared.CodeNotFound:               http.StatusNotFound,
	shared.CodeConflict:               http.StatusConflict,
	shared.CodeInvalidStateTransition: http.StatusConflict,
	shared.CodeBusinessRule:           http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown domain
// codes map to 422 so new business rules never surface as server faults.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
