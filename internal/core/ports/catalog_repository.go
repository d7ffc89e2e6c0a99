// Package ports defines repository interfaces for the marketplace domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for a seller's catalog:
// product entries and the service areas the seller delivers to.
type CatalogRepository interface {
	// AddEntry persists a new catalog entry.
	AddEntry(ctx context.Context, entry *catalog.Entry) error

	// GetEntriesBySeller retrieves all catalog entries of a seller,
	// active and inactive. Price resolution filters on activity itself.
	GetEntriesBySeller(ctx context.Context, sellerID kernel.UUID) ([]*catalog.Entry, error)

	// DecrementStock atomically reduces an entry's stock by the given
	// quantity. The decrement only applies when enough stock remains;
	// otherwise it fails without changing anything, so stock never goes
	// negative even under concurrent orders.
	DecrementStock(ctx context.Context, entryID kernel.UUID, quantity int) error

	// AddServiceArea persists a seller's delivery area declaration.
	AddServiceArea(ctx context.Context, area catalog.ServiceArea) error

	// GetServiceAreasBySeller retrieves all service areas a seller declared.
	GetServiceAreasBySeller(ctx context.Context, sellerID kernel.UUID) ([]catalog.ServiceArea, error)
}
