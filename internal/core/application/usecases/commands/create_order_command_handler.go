package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/party"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Resolves requested items against the seller's live catalog, computes the
// settlement totals, decrements stock for catalog-sourced lines, persists the
// order and publishes an order-changed event.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderChangedPublisher
	resolver   services.CatalogResolver
	calculator services.PricingCalculator
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and a publisher for
// order-changed notifications. The logger is shared with the catalog resolver
// for catalog-miss warnings.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		resolver:   services.NewCatalogResolver(logger),
		calculator: services.NewPricingCalculator(),
	}
}

// Handle processes the order placement command.
// The seller and buyer must exist and carry the expected roles. Stock is
// decremented conditionally for every catalog-sourced line; a raced-out
// decrement fails the whole order and the transaction rolls back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	postalCode, err := kernel.NewPostalCode(cmd.Delivery().PostalCode)
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

	partyRepo := uow.PartyRepository()
	seller, err := partyRepo.Get(ctx, cmd.SellerID())
	if err != nil {
		return err
	}
	if seller.Role() != party.RoleSeller {
		return errs.NewValueIsInvalidError("seller id")
	}

	buyer, err := partyRepo.Get(ctx, cmd.BuyerID())
	if err != nil {
		return err
	}
	if buyer.Role() != party.RoleBuyer {
		return errs.NewValueIsInvalidError("buyer id")
	}

	catalogRepo := uow.CatalogRepository()
	entries, err := catalogRepo.GetEntriesBySeller(ctx, cmd.SellerID())
	if err != nil {
		return err
	}

	areas, err := catalogRepo.GetServiceAreasBySeller(ctx, cmd.SellerID())
	if err != nil {
		return err
	}

	items, err := h.resolver.Resolve(entries, itemRequests(cmd.Items()))
	if err != nil {
		return err
	}

	pricing := h.calculator.Price(items, areas, postalCode)

	delivery, err := order.NewDeliveryRecord(
		order.Address{
			Street:     cmd.Delivery().Street,
			City:       cmd.Delivery().City,
			State:      cmd.Delivery().State,
			PostalCode: cmd.Delivery().PostalCode,
		},
		cmd.Delivery().ScheduledDate,
		cmd.Delivery().TimeWindow,
		cmd.Delivery().Method,
		pricing.DeliveryCharge,
	)
	if err != nil {
		return err
	}

	number := kernel.NewOrderNumber()

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		number,
		cmd.BuyerID(),
		cmd.SellerID(),
		items,
		delivery,
		cmd.PaymentMethod(),
		cmd.Instructions(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = h.decrementStock(ctx, catalogRepo, entries, items); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, aggregate)
}

// decrementStock reduces stock for every catalog-sourced line. Client-priced
// lines name products the catalog does not track, so they carry no stock.
func (h *CreateOrderCommandHandler) decrementStock(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	entries []*catalog.Entry,
	items []order.LineItem,
) error {
	for _, item := range items {
		if item.Source() != order.PriceFromCatalog {
			continue
		}

		entry := matchEntry(entries, item.ProductName())
		if entry == nil {
			return errs.NewObjectNotFoundError("catalog entry", item.ProductName())
		}

		if err := catalogRepo.DecrementStock(ctx, entry.ID(), item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}

func matchEntry(entries []*catalog.Entry, productName string) *catalog.Entry {
	for _, entry := range entries {
		if entry.IsActive() && entry.MatchesName(productName) {
			return entry
		}
	}
	return nil
}

func itemRequests(items []OrderItemInput) []services.ItemRequest {
	requests := make([]services.ItemRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, services.ItemRequest{
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			CallerPrice: item.Price,
		})
	}
	return requests
}
