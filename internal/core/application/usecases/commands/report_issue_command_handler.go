package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ReportIssueCommandHandler opens issues on orders. The aggregate rejects
// reporters that are neither the order's buyer nor its seller.
type ReportIssueCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReportIssueCommandHandler creates a handler for issue reporting.
func NewReportIssueCommandHandler(uowFactory OrderUoWFactory) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the issue reporting command.
func (h *ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	issue, err := order.NewIssue(
		cmd.IssueID(),
		cmd.RaisedBy(),
		cmd.Subject(),
		cmd.Description(),
		time.Now(),
	)
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

	if err = aggregate.ReportIssue(issue); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
