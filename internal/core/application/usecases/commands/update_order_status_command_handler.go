package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler drives the order lifecycle state machine.
// Authorization rules:
//   - the order's seller drives the normal lifecycle and the side exits
//   - the order's buyer may only request cancellation
//   - the system actor may apply any transition
//
// The aggregate enforces the terminal-state guard; a concurrent writer loses
// at Update time through the aggregate's version.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for lifecycle changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = authorize(cmd.Actor(), cmd.Target(), aggregate); err != nil {
		return err
	}

	now := time.Now()
	if cmd.Target() == order.Cancelled {
		err = aggregate.Cancel(cmd.Actor().Kind.String(), cmd.Location(), cmd.Description(), now)
	} else {
		err = aggregate.TransitionTo(cmd.Target(), cmd.Location(), cmd.Description(), now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, aggregate)
}

// authorize checks that the actor may apply the requested transition to the
// given order.
func authorize(actor Actor, target order.Status, aggregate *order.Order) error {
	switch actor.Kind {
	case ActorSystem:
		return nil
	case ActorSeller:
		if !actor.ID.IsEqual(aggregate.SellerID()) {
			return errs.NewForbiddenError(actor.Kind.String(), "change another seller's order")
		}
		return nil
	case ActorBuyer:
		if !actor.ID.IsEqual(aggregate.BuyerID()) {
			return errs.NewForbiddenError(actor.Kind.String(), "change another buyer's order")
		}
		if target != order.Cancelled {
			return errs.NewForbiddenError(actor.Kind.String(), "move an order beyond cancellation")
		}
		return nil
	default:
		return errs.NewValueIsInvalidError("actor kind")
	}
}
