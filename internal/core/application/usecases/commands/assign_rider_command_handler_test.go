package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	attributes, err := delivery.NewPhysicalAttributes(10, 5, 40)
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"flowers",
		"12 Main St",
		"7 Oak Ave",
		attributes,
		930,
	)
	require.NoError(t, err)

	return d
}

func admin(t *testing.T) delivery.Actor {
	t.Helper()

	actor, err := delivery.NewActor(kernel.NewUUID(), delivery.RoleAdmin)
	require.NoError(t, err)
	return actor
}

func TestAssignRiderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	d := pendingDelivery(t)
	riderID := kernel.NewUUID()

	cmd, err := commands.NewAssignRiderCommand(d.ID(), riderID, admin(t), 1)
	require.NoError(t, err)

	directory := new(MockRiderDirectory)
	directory.On("Status", ctx, riderID).
		Return(ports.RiderStatus{Registered: true, Available: true}, nil).Once()

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		repo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewAssignRiderCommandHandler(factory, directory, notifier, discardLogger())
	assigned, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, delivery.Accepted, assigned.Status())
	require.NotNil(t, assigned.RiderID())
	require.True(t, riderID.IsEqual(*assigned.RiderID()))
	require.Equal(t, int64(2), assigned.Version())

	directory.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_RiderNotFound(t *testing.T) {
	ctx := t.Context()
	d := pendingDelivery(t)
	riderID := kernel.NewUUID()

	cmd, err := commands.NewAssignRiderCommand(d.ID(), riderID, admin(t), 1)
	require.NoError(t, err)

	directory := new(MockRiderDirectory)
	directory.On("Status", ctx, riderID).Return(ports.RiderStatus{}, nil).Once()

	h := commands.NewAssignRiderCommandHandler(new(MockUoWFactory), directory, nil, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotFound)
	directory.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_RiderUnavailable(t *testing.T) {
	ctx := t.Context()
	d := pendingDelivery(t)
	riderID := kernel.NewUUID()

	cmd, err := commands.NewAssignRiderCommand(d.ID(), riderID, admin(t), 1)
	require.NoError(t, err)

	directory := new(MockRiderDirectory)
	directory.On("Status", ctx, riderID).
		Return(ports.RiderStatus{Registered: true, Available: false}, nil).Once()

	h := commands.NewAssignRiderCommandHandler(new(MockUoWFactory), directory, nil, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrRiderUnavailable)
	directory.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()
	d := pendingDelivery(t)
	riderID := kernel.NewUUID()

	// The caller observed version 2 but the stored aggregate is at 1.
	cmd, err := commands.NewAssignRiderCommand(d.ID(), riderID, admin(t), 2)
	require.NoError(t, err)

	directory := new(MockRiderDirectory)
	directory.On("Status", ctx, riderID).
		Return(ports.RiderStatus{Registered: true, Available: true}, nil).Once()

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignRiderCommandHandler(factory, directory, nil, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	require.Equal(t, delivery.Pending, d.Status(), "failed command must not mutate the aggregate")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignRiderCommandHandler_Handle_ForbiddenActor(t *testing.T) {
	ctx := t.Context()
	d := pendingDelivery(t)
	riderID := kernel.NewUUID()

	customer, err := delivery.NewActor(kernel.NewUUID(), delivery.RoleCustomer)
	require.NoError(t, err)

	cmd, err := commands.NewAssignRiderCommand(d.ID(), riderID, customer, 1)
	require.NoError(t, err)

	directory := new(MockRiderDirectory)
	directory.On("Status", ctx, riderID).
		Return(ports.RiderStatus{Registered: true, Available: true}, nil).Once()

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignRiderCommandHandler(factory, directory, nil, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}
