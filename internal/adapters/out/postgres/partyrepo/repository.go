package partyrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/party"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartyRepository implements PartyRepository using GORM.
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GORM party repository.
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// Add saves a new party to the database.
func (r *GormPartyRepository) Add(ctx context.Context, p *party.Party) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a party by its unique identifier.
func (r *GormPartyRepository) Get(ctx context.Context, id kernel.UUID) (*party.Party, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartyDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("party", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
