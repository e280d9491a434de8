package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would drive a balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// Kind is the closed set of failure classes surfaced by the core.
type Kind int

const (
	// KindInternal covers storage failures, overflow and serialization errors.
	KindInternal Kind = iota
	// KindBadRequest means the caller input violates a precondition.
	KindBadRequest
	// KindNotFound means a referenced resource does not exist for the business.
	KindNotFound
	// KindInsufficientFunds is a legitimate business outcome, not a fault.
	KindInsufficientFunds
	// KindConflict means a uniqueness constraint was hit.
	KindConflict
	// KindUnauthorized means the request carried no valid credentials.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// AppError carries a Kind, a caller-safe message and the underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// NewAppError creates an AppError of the given kind.
func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the sentinel of its kind.
func (e *AppError) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindBadRequest:
		return target == ErrValidation
	case KindInsufficientFunds:
		return target == ErrInsufficientFunds
	case KindConflict:
		return target == ErrDuplicate
	case KindUnauthorized:
		return target == ErrUnauthorized
	}
	return false
}

// BadRequest returns a KindBadRequest error whose reason is shown to the caller verbatim.
func BadRequest(reason string) *AppError {
	return NewAppError(KindBadRequest, reason, nil)
}

// NotFound returns a KindNotFound error.
func NotFound(what string) *AppError {
	return NewAppError(KindNotFound, what+" not found", nil)
}

// InsufficientFunds returns a KindInsufficientFunds error.
func InsufficientFunds() *AppError {
	return NewAppError(KindInsufficientFunds, "insufficient funds", nil)
}

// Internal wraps err as a KindInternal error. The message is for logs only.
func Internal(message string, err error) *AppError {
	return NewAppError(KindInternal, message, err)
}

// KindOf classifies any error. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindBadRequest
	case errors.Is(err, ErrInsufficientFunds):
		return KindInsufficientFunds
	case errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	}
	return KindInternal
}

// PublicMessage returns the text that may be shown to API callers for err.
func PublicMessage(err error) string {
	var appErr *AppError
	switch KindOf(err) {
	case KindBadRequest:
		if errors.As(err, &appErr) && appErr.Kind == KindBadRequest {
			return appErr.Message
		}
		return err.Error()
	case KindNotFound:
		return "Data Not found"
	case KindInsufficientFunds:
		return "insufficient funds"
	case KindConflict:
		if errors.As(err, &appErr) && appErr.Kind == KindConflict {
			return appErr.Message
		}
		return "resource already exists"
	case KindUnauthorized:
		return "Unauthorized"
	}
	return "Internal server error"
}
