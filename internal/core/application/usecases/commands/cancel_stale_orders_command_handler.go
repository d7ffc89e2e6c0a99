package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// CancelStaleOrdersCommandHandler cancels pending orders whose payment never
// arrived. Runs as the system actor from the background sweep job. Each order
// is cancelled in its own transaction so one failure does not stall the rest.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale-order sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) CancelStaleOrdersCommandHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_stale_orders"),
	}
}

// Handle processes the stale-order sweep command.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cutoff := time.Now().Add(-cmd.MaxAge())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	stale, err := uow.OrderRepository().GetAllPendingBefore(ctx, cutoff)
	rollbackErr := uow.Rollback(ctx)
	if err != nil {
		return err
	}
	if rollbackErr != nil {
		return rollbackErr
	}

	for _, aggregate := range stale {
		if aggregate.Payment().Status() != order.PaymentPending {
			continue
		}

		if err := h.cancel(ctx, aggregate); err != nil {
			h.logger.Error("failed to cancel stale order",
				"order_id", aggregate.ID().String(), "error", err)
			continue
		}

		h.logger.Info("cancelled stale unpaid order",
			"order_id", aggregate.ID().String(),
			"order_number", aggregate.OrderNumber().String())
	}

	return nil
}

func (h *CancelStaleOrdersCommandHandler) cancel(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := aggregate.Cancel(
		ActorSystem.String(), "", "Cancelled automatically: payment not received", time.Now(),
	); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, aggregate)
}
