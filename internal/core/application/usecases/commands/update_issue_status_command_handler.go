package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/errs"
)

// UpdateIssueStatusCommandHandler moves issues through their workflow.
// Only the order's seller or the system may change issue status; buyers
// report issues but do not work them.
type UpdateIssueStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateIssueStatusCommandHandler creates a handler for issue workflow changes.
func NewUpdateIssueStatusCommandHandler(uowFactory OrderUoWFactory) UpdateIssueStatusCommandHandler {
	return UpdateIssueStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the issue status change command.
func (h *UpdateIssueStatusCommandHandler) Handle(ctx context.Context, cmd UpdateIssueStatusCommand) error {
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

	actor := cmd.Actor()
	switch actor.Kind {
	case ActorSystem:
	case ActorSeller:
		if !actor.ID.IsEqual(aggregate.SellerID()) {
			return errs.NewForbiddenError(actor.Kind.String(), "work another seller's issues")
		}
	default:
		return errs.NewForbiddenError(actor.Kind.String(), "change issue status")
	}

	if err = aggregate.UpdateIssueStatus(cmd.IssueID(), cmd.Target(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
