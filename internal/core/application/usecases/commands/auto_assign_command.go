package commands

import (
	"errors"

	"courier/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand triggers one round of automatic assignment: the oldest
// pending delivery is matched with an available rider. Carries no data; it
// exists so the scheduled job follows the same command/handler discipline
// as every other write.
type AutoAssignCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignCommand creates the command.
func NewAutoAssignCommand() AutoAssignCommand {
	return AutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}
