package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders by party
// and lifecycle state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The write is guarded by the aggregate's version: a concurrent writer
	// that already advanced the version makes Update fail with a version error.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with items, tracking history, payment,
	// ratings and issues.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPendingBefore retrieves orders still in Pending status that were
	// created before the given cutoff. Used by the stale-order cancellation
	// job to find orders whose payment never arrived.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
