package catalogrepo

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AddEntry saves a new catalog entry to the database.
func (r *GormCatalogRepository) AddEntry(ctx context.Context, entry *catalog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetEntriesBySeller retrieves all catalog entries of a seller.
func (r *GormCatalogRepository) GetEntriesBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
) ([]*catalog.Entry, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error; err != nil {
		return nil, err
	}

	entries := make([]*catalog.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := entryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DecrementStock atomically reduces an entry's stock. The conditional update
// only fires when enough stock remains, so concurrent orders cannot drive
// stock below zero; a raced-out decrement affects no rows and returns an
// out-of-range error.
func (r *GormCatalogRepository) DecrementStock(ctx context.Context, entryID kernel.UUID, quantity int) error {
	if err := entryID.Validate(); err != nil {
		return err
	}

	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ? AND stock >= ?", entryID.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewValueIsOutOfRangeError("stock", quantity, 0, "available stock")
	}

	return nil
}

// AddServiceArea saves a seller's delivery area declaration.
func (r *GormCatalogRepository) AddServiceArea(ctx context.Context, area catalog.ServiceArea) error {
	if err := area.Validate(); err != nil {
		return err
	}

	dto := areaFromDomain(area)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetServiceAreasBySeller retrieves all service areas a seller declared.
func (r *GormCatalogRepository) GetServiceAreasBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
) ([]catalog.ServiceArea, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ServiceAreaDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "seller_id = ?", sellerID.Bytes()).Error; err != nil {
		return nil, err
	}

	areas := make([]catalog.ServiceArea, 0, len(dtos))
	for _, dto := range dtos {
		area, err := areaToDomain(dto)
		if err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}

	return areas, nil
}
