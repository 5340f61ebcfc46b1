// Package commands contains the write operations of the delivery engine.
// Each operation is a validated command struct plus a handler that manages
// the transaction, applies the aggregate mutation and fires the
// post-commit notification.
package commands

import (
	"context"

	"courier/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on these narrow interfaces rather than on the
// full ports.UnitOfWork so tests can substitute them piecemeal.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides the delivery repository bound to the
	// current transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// UoW is the transaction boundary every delivery command runs in.
	UoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// UoWFactory creates a fresh UoW per command.
	UoWFactory interface {
		Create() UoW
	}
)
