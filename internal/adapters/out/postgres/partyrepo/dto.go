// Package partyrepo provides data transfer objects and mapping functions for
// party persistence: buyers and sellers share one table distinguished by role.
package partyrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/party"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartyDTO represents the database structure for persisting parties.
// Buyer and seller profiles are flattened into one row; columns not used by
// the party's role stay empty.
type PartyDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role int       `gorm:"index"`

	Name       string
	Phone      string
	PostalCode string
	Address    string

	BusinessName string
	Categories   pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for parties.
func (PartyDTO) TableName() string {
	return "parties"
}

// fromDomain converts a party domain entity to its database representation.
func fromDomain(p *party.Party) PartyDTO {
	dto := PartyDTO{
		ID:   p.ID().Bytes(),
		Role: int(p.Role()),
	}

	if profile, ok := p.BuyerProfile(); ok {
		dto.Name = profile.Name
		dto.Phone = profile.Phone
		dto.PostalCode = profile.PostalCode.String()
		dto.Address = profile.Address
	}

	if profile, ok := p.SellerProfile(); ok {
		dto.BusinessName = profile.BusinessName
		dto.Phone = profile.Phone
		dto.PostalCode = profile.PostalCode.String()
		dto.Categories = profile.Categories
	}

	return dto
}

// toDomain converts a database DTO to a party domain entity.
func toDomain(dto PartyDTO) (*party.Party, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	postalCode, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return nil, err
	}

	role := party.Role(dto.Role)
	switch role {
	case party.RoleBuyer:
		return party.NewParty(id, role, party.BuyerProfile{
			Name:       dto.Name,
			Phone:      dto.Phone,
			PostalCode: postalCode,
			Address:    dto.Address,
		})
	case party.RoleSeller:
		return party.NewParty(id, role, party.SellerProfile{
			BusinessName: dto.BusinessName,
			Phone:        dto.Phone,
			PostalCode:   postalCode,
			Categories:   dto.Categories,
		})
	default:
		return nil, errs.NewValueIsInvalidError("party role")
	}
}
