package delivery

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a closed state machine; any status string or transition not
// listed here is rejected at the boundary.
//
// State transitions:
//
//	Pending ──> Accepted ──> InTransit ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no further mutation is permitted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the delivery awaits rider assignment.
	Pending

	// Accepted indicates a rider has been bound to the delivery.
	Accepted

	// InTransit indicates the assigned rider has picked up the package.
	InTransit

	// Delivered indicates the package reached its destination. Terminal.
	Delivered

	// Cancelled indicates the delivery was called off. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// allowedTransitions is the authoritative transition table.
// Role and ownership checks live on the Delivery aggregate; this table only
// answers reachability.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Accepted, Cancelled},
		Accepted:  {InTransit, Cancelled},
		InTransit: {Delivered},
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an InvalidInput error for anything outside the closed enumeration.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewInvalidInputErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire representation, e.g. "in_transit".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and any value outside the enumeration.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewInvalidInputErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateTransition checks reachability of target from s.
// Terminal source states fail with TerminalStateError; any other
// unreachable target fails with InvalidTransitionError naming both states.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewTerminalStateError(s.String())
	}
	for _, next := range allowedTransitions()[s] {
		if next == target {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s.String(), target.String())
}

// ValidateEditable reports whether destination changes are allowed in s.
// Only pending and accepted deliveries are editable.
func (s Status) ValidateEditable() error {
	if s.IsTerminal() {
		return errs.NewTerminalStateError(s.String())
	}
	if s != Pending && s != Accepted {
		return errs.NewInvalidTransitionError(s.String(), s.String())
	}
	return nil
}

// ValidateCanHaveRider enforces the binding invariant: a rider is bound
// if and only if the status is accepted, in_transit or delivered.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	requiresRider := s == Accepted || s == InTransit || s == Delivered

	if hasRider && !requiresRider {
		return errs.NewInvalidInputErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s.String()),
		)
	}

	if !hasRider && requiresRider {
		return errs.NewInvalidInputErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s.String()),
		)
	}

	return nil
}
