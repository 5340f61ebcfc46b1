package delivery

import (
	"fmt"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// Role classifies who is attempting an operation on a delivery.
// Permission checks on the aggregate are gated on the role plus, where
// relevant, on the actor's identity (owning customer, assigned rider).
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the actor who created the delivery.
	RoleCustomer

	// RoleRider is an actor moving packages; only the assigned rider may
	// progress a delivery through in_transit and delivered.
	RoleRider

	// RoleAdmin is an operations actor with cancellation and assignment rights.
	RoleAdmin

	// RoleResolver is the internal assignment resolver. It may bind riders
	// to pending deliveries but holds no other rights.
	RoleResolver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleRider:    "rider",
		RoleAdmin:    "admin",
		RoleResolver: "resolver",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewInvalidInputErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire representation, e.g. "customer".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects RoleUnknown and any value outside the enumeration.
func (r Role) Validate() error {
	if r < RoleCustomer || r > RoleResolver {
		return errs.NewInvalidInputErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the identity attempting an operation: a role plus the UUID that
// role acts under. The engine trusts the identity (authentication is an
// external collaborator) and enforces only role and ownership rules.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates a validated actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the identifier the actor acts under.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate rejects zero-value actors.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
