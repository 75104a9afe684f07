/**
 * @description
 * This package defines the application error taxonomy shared by the engines
 * and the API layer. Every engine failure is one of these kinds, so the API
 * layer can map errors to HTTP statuses without string matching, and the
 * admin UI can distinguish a malformed request from a policy refusal.
 */

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the error class. The codes are part of the API contract.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindPolicyViolation Kind = "POLICY_VIOLATION"
	KindConflict        Kind = "CONFLICT"
	KindFeatureDisabled Kind = "FEATURE_DISABLED"
	KindReadOnlyMode    Kind = "READ_ONLY_MODE"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindInternal        Kind = "INTERNAL_ERROR"
)

// Error is a kinded application error.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the error kind to the HTTP status the API layer writes.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindPolicyViolation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindFeatureDisabled, KindReadOnlyMode:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func PolicyViolation(message string) *Error {
	return &Error{Kind: KindPolicyViolation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func FeatureDisabled(feature string) *Error {
	return &Error{Kind: KindFeatureDisabled, Message: fmt.Sprintf("%s is disabled", feature)}
}

func ReadOnlyMode() *Error {
	return &Error{Kind: KindReadOnlyMode, Message: "service is in read-only mode"}
}

func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// KindOf extracts the kind from any error chain. Unknown errors are
// classified as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
