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

func fullScores() order.RatingScores {
	return order.RatingScores{Quality: 5, Delivery: 4, Service: 5, Value: 4}
}

func TestSubmitRatingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	aggregate := newDeliveredOrder(t, buyerID, kernel.NewUUID())

	cmd, err := commands.NewSubmitRatingCommand(aggregate.ID(), buyerID, fullScores(), "great produce")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitRatingCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.BuyerRating())
	require.Equal(t, 5, aggregate.BuyerRating().Overall())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitRatingCommandHandler_Handle_ForeignBuyerForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := newDeliveredOrder(t, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewSubmitRatingCommand(aggregate.ID(), kernel.NewUUID(), fullScores(), "")
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

	h := commands.NewSubmitRatingCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Nil(t, aggregate.BuyerRating())
}

func TestSubmitRatingCommandHandler_Handle_UndeliveredRejected(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	aggregate := newTestOrder(t, buyerID, kernel.NewUUID())

	cmd, err := commands.NewSubmitRatingCommand(aggregate.ID(), buyerID, fullScores(), "")
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

	h := commands.NewSubmitRatingCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotDelivered)
}

func TestSubmitRatingCommandHandler_Handle_OutOfRangeScore(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()

	cmd, err := commands.NewSubmitRatingCommand(
		kernel.NewUUID(), buyerID,
		order.RatingScores{Quality: 6, Delivery: 4, Service: 5, Value: 4}, "",
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewSubmitRatingCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	factory.AssertNotCalled(t, "Create")
}
