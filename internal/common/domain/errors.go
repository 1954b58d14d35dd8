package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so transport layers can map it to a
// status code without inspecting message text.
type ErrorKind string

const (
	KindUnauthenticated          ErrorKind = "UNAUTHENTICATED"
	KindForbidden                ErrorKind = "FORBIDDEN"
	KindNotFound                 ErrorKind = "NOT_FOUND"
	KindValidation               ErrorKind = "VALIDATION"
	KindInvalidDateRange         ErrorKind = "INVALID_DATE_RANGE"
	KindCapacityExceeded         ErrorKind = "CAPACITY_EXCEEDED"
	KindPropertyUnavailable      ErrorKind = "PROPERTY_UNAVAILABLE"
	KindDateConflict             ErrorKind = "DATE_CONFLICT"
	KindInvalidTransition        ErrorKind = "INVALID_TRANSITION"
	KindAlreadyCanceled          ErrorKind = "ALREADY_CANCELED"
	KindImmutable                ErrorKind = "IMMUTABLE"
	KindCancellationWindowClosed ErrorKind = "CANCELLATION_WINDOW_CLOSED"
	KindConflict                 ErrorKind = "CONFLICT"
	KindInternal                 ErrorKind = "INTERNAL"
)

// Error is a domain error with a machine-readable kind and a human-readable
// message. It optionally wraps an underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// NewUnauthenticatedError indicates missing or invalid credentials.
func NewUnauthenticatedError() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

// NewForbiddenError indicates the actor lacks permission for the operation.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFoundError indicates the named resource does not exist.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewValidationError indicates malformed or inconsistent input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewInvalidDateRangeError indicates an unusable check-in/check-out pair.
func NewInvalidDateRangeError(message string) *Error {
	return &Error{Kind: KindInvalidDateRange, Message: message}
}

// NewCapacityExceededError indicates the guest count exceeds the property limit.
func NewCapacityExceededError(maxGuests int) *Error {
	return &Error{
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf("property accommodates at most %d guests", maxGuests),
	}
}

// NewPropertyUnavailableError indicates the property is not accepting bookings.
func NewPropertyUnavailableError() *Error {
	return &Error{Kind: KindPropertyUnavailable, Message: "property is not available for booking"}
}

// NewDateConflictError indicates the requested range overlaps an active booking.
func NewDateConflictError() *Error {
	return &Error{Kind: KindDateConflict, Message: "property is already booked for the selected dates"}
}

// NewInvalidTransitionError indicates a status change the state machine forbids.
func NewInvalidTransitionError(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("Cannot change status from %s to %s", from, to),
	}
}

// NewAlreadyCanceledError indicates a cancel request on a canceled booking.
func NewAlreadyCanceledError() *Error {
	return &Error{Kind: KindAlreadyCanceled, Message: "booking is already canceled"}
}

// NewImmutableError indicates a mutation of a terminally completed booking.
func NewImmutableError(message string) *Error {
	return &Error{Kind: KindImmutable, Message: message}
}

// NewCancellationWindowClosedError indicates the 24-hour cutoff has passed.
func NewCancellationWindowClosedError() *Error {
	return &Error{
		Kind:    KindCancellationWindowClosed,
		Message: "bookings cannot be canceled within 24 hours of check-in",
	}
}

// NewConflictError indicates a concurrent modification was detected.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInternalError wraps an infrastructure failure, preserving the diagnostic.
func NewInternalError(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}
