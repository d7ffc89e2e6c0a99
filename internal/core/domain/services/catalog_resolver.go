package services

import (
	"fmt"
	"log/slog"
	"strings"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ItemRequest is one requested line of an order before price resolution.
// The caller-supplied price is only a fallback for items the seller's catalog
// does not carry.
type ItemRequest struct {
	ProductName string
	Category    string
	Quantity    int
	Unit        string
	CallerPrice float64
}

// CatalogResolver resolves requested line items against a seller's live
// catalog. For every request it determines the authoritative unit price and
// the reference market price used for savings computation.
//
// Resolution rules:
//   - Match active entries by product name (case-insensitive); when several
//     entries share a name, the requested category breaks the tie
//   - A catalog hit settles the entry's unit price and market price and tags
//     the line PriceFromCatalog
//   - A catalog miss falls back to the caller-supplied price for both prices
//     and tags the line PriceFromClient; the miss is logged, never an error
//
// The client-price fallback is a deliberate trust trade-off: the tag makes
// unverified prices visible to downstream consumers instead of silently
// accepting them.
type CatalogResolver struct {
	logger *slog.Logger
}

// NewCatalogResolver creates a resolver. A nil logger disables miss logging.
func NewCatalogResolver(logger *slog.Logger) CatalogResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return CatalogResolver{logger: logger.With("component", "catalog_resolver")}
}

// Resolve settles the requested items against the given catalog entries.
// Returns a validation error when the request list is empty, a quantity is
// below one, or a catalog miss carries no usable caller price.
func (r CatalogResolver) Resolve(
	entries []*catalog.Entry,
	requests []ItemRequest,
) ([]order.LineItem, error) {
	if len(requests) == 0 {
		return nil, errs.NewValueIsRequiredError("line items")
	}

	items := make([]order.LineItem, 0, len(requests))
	for _, req := range requests {
		if req.Quantity < 1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is less than 1 for %q", req.Quantity, req.ProductName))
		}

		entry := r.match(entries, req)

		var item order.LineItem
		var err error
		if entry != nil {
			item, err = order.NewLineItem(
				entry.Name(), entry.Category(), req.Quantity, entry.Unit(),
				entry.UnitPrice(), entry.MarketPrice(), order.PriceFromCatalog)
		} else {
			if req.CallerPrice <= 0 {
				return nil, errs.NewValueIsInvalidErrorWithCause("price",
					fmt.Errorf("%q is not in the catalog and no usable caller price was supplied", req.ProductName))
			}

			r.logger.Warn("catalog miss, falling back to caller-supplied price",
				"product", req.ProductName, "caller_price", req.CallerPrice)

			item, err = order.NewLineItem(
				req.ProductName, req.Category, req.Quantity, req.Unit,
				req.CallerPrice, req.CallerPrice, order.PriceFromClient)
		}
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// match finds the active catalog entry for a request. Name matches are
// case-insensitive; an exact category match wins when names are ambiguous.
func (r CatalogResolver) match(entries []*catalog.Entry, req ItemRequest) *catalog.Entry {
	var found *catalog.Entry
	for _, entry := range entries {
		if !entry.IsActive() || !entry.MatchesName(req.ProductName) {
			continue
		}

		if req.Category != "" && strings.EqualFold(entry.Category(), req.Category) {
			return entry
		}

		if found == nil {
			found = entry
		}
	}
	return found
}
