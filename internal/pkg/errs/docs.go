// Package errs defines the stable error taxonomy of the delivery engine.
//
// Every failure the engine reports belongs to exactly one kind:
//   - InvalidInputError: malformed or out-of-range parameters
//   - NotFoundError: referenced delivery or rider does not exist
//   - ForbiddenError: actor lacks the role/ownership for the transition
//   - InvalidTransitionError: status change unreachable from current status
//   - TerminalStateError: mutation of a delivered/cancelled record
//   - RiderUnavailableError: assignment target rider not available
//   - VersionConflictError: optimistic concurrency token is stale
//   - UnavailableError: store/directory timeout or outage
//
// Each kind follows the same pattern: a sentinel error variable, a struct
// type carrying details, constructors with and without cause, Error() for
// formatting and Unwrap() so errors.Is matches the sentinel. Callers are
// expected to branch on the sentinel and surface the details:
//
//	if errors.Is(err, errs.ErrVersionConflict) {
//	    // re-read the delivery and retry
//	}
//
// Kinds are part of the engine's public contract: API layers map each one
// to a distinct status code and the mapping must stay stable.
package errs
