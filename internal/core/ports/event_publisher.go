package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// OrderChangedPublisher notifies external consumers that an order was created
// or moved through its lifecycle. Implementations publish to the message
// broker; delivery is at-least-once and consumers must tolerate duplicates.
type OrderChangedPublisher interface {
	Publish(ctx context.Context, aggregate *order.Order) error
}
