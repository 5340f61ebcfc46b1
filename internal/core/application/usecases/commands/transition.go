package commands

import (
	"context"

	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

// applyTransition runs the shared write path of every lifecycle command:
// begin a transaction, load the aggregate, reject stale concurrency tokens,
// apply the mutation, persist via compare-and-set and commit. The mutation
// itself (role checks, state checks, field effects) lives on the aggregate.
func applyTransition(
	ctx context.Context,
	uowFactory UoWFactory,
	deliveryID kernel.UUID,
	observedVersion int64,
	mutate func(*delivery.Delivery) error,
) (*delivery.Delivery, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	aggregate, err := repo.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if aggregate.Version() != observedVersion {
		return nil, errs.NewVersionConflictError(deliveryID.String(), observedVersion)
	}

	if err = mutate(aggregate); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
