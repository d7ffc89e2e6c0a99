package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// SubmitRatingCommandHandler attaches a buyer's rating to a delivered order.
// Only the order's buyer may rate, only once, and only after delivery.
type SubmitRatingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitRatingCommandHandler creates a handler for rating submission.
func NewSubmitRatingCommandHandler(uowFactory OrderUoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating submission command.
func (h *SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	rating, err := order.NewRating(cmd.Scores(), cmd.Review(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.BuyerID().IsEqual(aggregate.BuyerID()) {
		return errs.NewForbiddenError("vendor", "rate another buyer's order")
	}

	if err = aggregate.AttachBuyerRating(rating); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
