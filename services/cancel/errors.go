package cancel

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to callers. Every failure of request intake is
// normalized into one of these; nothing propagates as a raw error.
const (
	CodeInvalidToken     = "invalid_token"
	CodeTokenMismatch    = "token_mismatch"
	CodeValidationFailed = "validation_failed"
	CodeTokenExpired     = "token_expired"
	CodeRequestExpired   = "request_expired"
	CodeAlreadyCancelled = "already_cancelled"
	CodeAlreadyApproved  = "already_approved"
	CodeBookingNotFound  = "booking_not_found"
	CodeMissingFields    = "missing_fields"
	CodeCreationFailed   = "creation_failed"
	CodeInternalError    = "internal_error"
)

// Token validation errors, distinguished so intake can log the failure class.
var (
	ErrTokenFormat    = &CancelError{Code: CodeInvalidToken, Message: "token is malformed"}
	ErrTokenTimestamp = &CancelError{Code: CodeInvalidToken, Message: "token timestamp is not numeric"}
	ErrTokenSignature = &CancelError{Code: CodeInvalidToken, Message: "token signature does not match"}
)

// CancelError carries a stable machine code and a human-readable message.
type CancelError struct {
	Code    string
	Message string
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewCancelError(code, message string) *CancelError {
	return &CancelError{Code: code, Message: message}
}

// HTTPStatus maps an error code to the response status of the intake endpoint.
func HTTPStatus(code string) int {
	switch code {
	case CodeBookingNotFound:
		return http.StatusNotFound
	case CodeCreationFailed, CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
