package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/party"
)

// PartyRepository defines the persistence contract for marketplace parties,
// both buyers and sellers.
type PartyRepository interface {
	// Add persists a new party.
	Add(ctx context.Context, p *party.Party) error

	// Get retrieves a party by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*party.Party, error)
}
