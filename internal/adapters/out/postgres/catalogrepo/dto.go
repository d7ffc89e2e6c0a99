// Package catalogrepo provides data transfer objects and mapping functions for
// catalog persistence: a seller's product entries and declared service areas.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting catalog entries.
type EntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;index"`
	Name        string    `gorm:"index"`
	Category    string
	Unit        string
	UnitPrice   float64
	MarketPrice *float64
	Stock       int
	Active      bool
}

// TableName specifies the database table name for catalog entries.
func (EntryDTO) TableName() string {
	return "catalog_entries"
}

// ServiceAreaDTO represents a seller's delivery area declaration.
type ServiceAreaDTO struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	SellerID          uuid.UUID `gorm:"type:uuid;index"`
	PostalCode        string    `gorm:"index"`
	DeliveryCharge    float64
	FreeDeliveryAbove float64
}

// TableName specifies the database table name for service areas.
func (ServiceAreaDTO) TableName() string {
	return "service_areas"
}

// entryFromDomain converts a catalog entry to its database representation.
func entryFromDomain(entry *catalog.Entry) EntryDTO {
	return EntryDTO{
		ID:          entry.ID().Bytes(),
		SellerID:    entry.SellerID().Bytes(),
		Name:        entry.Name(),
		Category:    entry.Category(),
		Unit:        entry.Unit(),
		UnitPrice:   entry.UnitPrice(),
		MarketPrice: entry.DeclaredMarketPrice(),
		Stock:       entry.Stock(),
		Active:      entry.IsActive(),
	}
}

// entryToDomain converts a database DTO to a catalog entry.
func entryToDomain(dto EntryDTO) (*catalog.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	return catalog.NewEntry(
		id, sellerID, dto.Name, dto.Category, dto.Unit,
		dto.UnitPrice, dto.MarketPrice, dto.Stock, dto.Active,
	)
}

// areaFromDomain converts a service area to its database representation.
func areaFromDomain(area catalog.ServiceArea) ServiceAreaDTO {
	return ServiceAreaDTO{
		SellerID:          area.SellerID().Bytes(),
		PostalCode:        area.PostalCode().String(),
		DeliveryCharge:    area.DeliveryCharge(),
		FreeDeliveryAbove: area.FreeDeliveryAbove(),
	}
}

// areaToDomain converts a database DTO to a service area.
func areaToDomain(dto ServiceAreaDTO) (catalog.ServiceArea, error) {
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return catalog.ServiceArea{}, err
	}

	postalCode, err := kernel.NewPostalCode(dto.PostalCode)
	if err != nil {
		return catalog.ServiceArea{}, err
	}

	return catalog.NewServiceArea(sellerID, postalCode, dto.DeliveryCharge, dto.FreeDeliveryAbove)
}
