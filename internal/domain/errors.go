package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "referenced entity is absent" error.
var ErrNotFound = errors.New("not found")

// Sentinel errors for simple conditions without extra context.
var (
	ErrTradeNotFound        = fmt.Errorf("trade %w", ErrNotFound)
	ErrListingNotFound      = fmt.Errorf("service %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// ErrStaleStatus is returned by a conditional status update that matched no row.
	ErrStaleStatus = errors.New("trade status changed concurrently")
)

// InvalidOperationError is returned when a request violates a business precondition.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return e.Reason
}

// PermissionDeniedError is returned when the actor may not perform the operation.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return e.Reason
}

// InvalidStateError is returned when the trade status does not permit the operation.
type InvalidStateError struct {
	Current Status
	Reason  string
	Err     error
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s (status %s)", e.Reason, e.Current)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}

// TransitionError is returned when an action is not valid from the current status.
type TransitionError struct {
	Action  Action
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("action %q is not valid from state %q", e.Action, e.Current)
}

// EmailConflictError is returned when an email address is already registered.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("email %q is already in use", e.Email)
}
