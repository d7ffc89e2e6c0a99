package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_SellerDrivesLifecycle(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	aggregate := newTestOrder(t, buyerID, sellerID)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: sellerID, Kind: commands.ActorSeller},
		order.Confirmed, "Warehouse", "Order confirmed",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockOrderChangedPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, aggregate).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Confirmed, aggregate.Status())
	require.NotNil(t, aggregate.ConfirmedAt())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_BuyerMayOnlyCancel(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	aggregate := newTestOrder(t, buyerID, sellerID)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: buyerID, Kind: commands.ActorBuyer},
		order.Dispatched, "", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockOrderChangedPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Equal(t, order.Pending, aggregate.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_BuyerCancels(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	aggregate := newTestOrder(t, buyerID, sellerID)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: buyerID, Kind: commands.ActorBuyer},
		order.Cancelled, "", "Changed my mind",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	publisher := new(MockOrderChangedPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, aggregate).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Cancelled, aggregate.Status())
	require.Equal(t, "vendor", aggregate.CancelledBy())
	require.NotNil(t, aggregate.CancelledAt())
}

func TestUpdateOrderStatusCommandHandler_Handle_ForeignSellerForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := newTestOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: kernel.NewUUID(), Kind: commands.ActorSeller},
		order.Confirmed, "", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockOrderChangedPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalStateRejected(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	aggregate := newDeliveredOrder(t, buyerID, sellerID)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: sellerID, Kind: commands.ActorSeller},
		order.Dispatched, "", "",
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockOrderChangedPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrTerminalState)
	require.Equal(t, order.Delivered, aggregate.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_UpdateConflict(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	aggregate := newTestOrder(t, buyerID, sellerID)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		aggregate.ID(),
		commands.Actor{ID: sellerID, Kind: commands.ActorSeller},
		order.Confirmed, "", "",
	)
	require.NoError(t, err)

	conflict := errs.NewVersionIsInvalidErrorWithCause("order version")
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockOrderChangedPublisher)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommand_RejectsInvalidInput(t *testing.T) {
	t.Run("should reject unknown target", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(),
			commands.Actor{ID: kernel.NewUUID(), Kind: commands.ActorSeller},
			order.Unknown, "", "",
		)
		require.Error(t, err)
	})

	t.Run("should reject party actor without id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(),
			commands.Actor{Kind: commands.ActorBuyer},
			order.Cancelled, "", "",
		)
		require.Error(t, err)
	})

	t.Run("should allow system actor without id", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderStatusCommand(
			kernel.NewUUID(),
			commands.Actor{Kind: commands.ActorSystem},
			order.Cancelled, "", "",
		)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should reject unconstructed command", func(t *testing.T) {
		var cmd commands.UpdateOrderStatusCommand
		require.Error(t, cmd.Validate())
	})
}
