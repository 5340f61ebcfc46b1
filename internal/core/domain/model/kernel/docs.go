// Package kernel contains shared value objects for the delivery domain.
//
// Value objects here are immutable, validated at construction and safe for
// concurrent use. Domain entities reference each other exclusively through
// kernel.UUID identifiers.
package kernel
