package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify every failure the engine can return.
// Callers match on these with errors.Is; the concrete error types below
// carry the details.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("object not found")
	ErrForbidden         = errors.New("actor is not permitted to perform this action")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrTerminalState     = errors.New("delivery is in a terminal state")
	ErrRiderUnavailable  = errors.New("rider is not available")
	ErrVersionConflict   = errors.New("version conflict")
	ErrUnavailable       = errors.New("downstream dependency is unavailable")
)

// sanitize strips newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// InvalidInputError reports a malformed or out-of-range parameter.
// The request is rejected before any state change.
type InvalidInputError struct {
	ParamName string
	Cause     error
}

func NewInvalidInputError(paramName string) *InvalidInputError {
	return &InvalidInputError{ParamName: paramName}
}

func NewInvalidInputErrorWithCause(paramName string, cause error) *InvalidInputError {
	return &InvalidInputError{ParamName: paramName, Cause: cause}
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrInvalidInput, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrInvalidInput, e.ParamName))
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError reports that a referenced delivery or rider does not exist.
type NotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewNotFoundError(paramName string, id any) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id}
}

func NewNotFoundErrorWithCause(paramName string, id any, cause error) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrNotFound, e.ID))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ForbiddenError reports that the acting role or identity does not match
// what the requested transition requires.
type ForbiddenError struct {
	Role   string
	Action string
	Cause  error
}

func NewForbiddenError(role string, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

func NewForbiddenErrorWithCause(role string, action string, cause error) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s may not %s (cause: %s)", ErrForbidden, e.Role, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Role, e.Action))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError reports a status change that is not reachable
// from the delivery's current status. It names both states so the caller
// can see exactly what was rejected.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from string, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TerminalStateError reports an attempted mutation of a delivered or
// cancelled record.
type TerminalStateError struct {
	Status string
}

func NewTerminalStateError(status string) *TerminalStateError {
	return &TerminalStateError{Status: status}
}

func (e *TerminalStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrTerminalState, e.Status))
}

func (e *TerminalStateError) Unwrap() error {
	return ErrTerminalState
}

// RiderUnavailableError reports that the assignment target rider exists
// but is not currently accepting deliveries.
type RiderUnavailableError struct {
	RiderID string
}

func NewRiderUnavailableError(riderID string) *RiderUnavailableError {
	return &RiderUnavailableError{RiderID: riderID}
}

func (e *RiderUnavailableError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrRiderUnavailable, e.RiderID))
}

func (e *RiderUnavailableError) Unwrap() error {
	return ErrRiderUnavailable
}

// VersionConflictError reports a write submitted against a stale version.
// The caller must re-read the record, recompute and resubmit.
type VersionConflictError struct {
	DeliveryID string
	Version    int64
}

func NewVersionConflictError(deliveryID string, version int64) *VersionConflictError {
	return &VersionConflictError{DeliveryID: deliveryID, Version: version}
}

func (e *VersionConflictError) Error() string {
	return sanitize(fmt.Sprintf("%s: delivery %s at version %d", ErrVersionConflict, e.DeliveryID, e.Version))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// UnavailableError reports a store or directory timeout/outage.
// No partial mutation has been applied when this is returned.
type UnavailableError struct {
	Op    string
	Cause error
}

func NewUnavailableError(op string, cause error) *UnavailableError {
	return &UnavailableError{Op: op, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUnavailable, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUnavailable, e.Op))
}

// Unwrap exposes the cause alongside the sentinel so callers can still
// match context.Canceled or context.DeadlineExceeded.
func (e *UnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Cause}
}
