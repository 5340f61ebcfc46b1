package commands_test

import (
	"errors"
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/delivery"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateDeliveryCommand {
	t.Helper()

	attributes, err := delivery.NewPhysicalAttributes(10, 5, 40)
	require.NoError(t, err)

	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"flowers",
		"12 Main St",
		"7 Oak Ave",
		attributes,
	)
	require.NoError(t, err)

	return cmd
}

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewPricingCalculator(), notifier, discardLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, delivery.Pending, created.Status())
	require.Equal(t, int64(1), created.Version())
	require.Equal(t, int64(930), created.Price())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateDeliveryCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewPricingCalculator(), nil, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateDeliveryCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewPricingCalculator(), nil, discardLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_NotifyFailureDoesNotSurface(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewCreateDeliveryCommandHandler(factory, services.NewPricingCalculator(), notifier, discardLogger())
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, created)

	notifier.AssertExpectations(t)
}
