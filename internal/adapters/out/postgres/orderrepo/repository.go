package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its line items, tracking history, ratings and
// issues to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The write is guarded by the version the
// aggregate was loaded with: a concurrent writer that already advanced the
// version makes this update fail with a version error. Line items are
// immutable and never rewritten; tracking steps, ratings and issues are
// replaced wholesale.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Omit("Items", "Steps", "Ratings", "Issues", "id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order version")
	}

	if err := r.replaceChildren(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceChildren rewrites the mutable child rows of an order.
func (r *GormOrderRepository) replaceChildren(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", dto.ID).Delete(&TrackingStepDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Steps) > 0 {
		if err := db.Create(&dto.Steps).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&RatingDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Ratings) > 0 {
		if err := db.Create(&dto.Ratings).Error; err != nil {
			return err
		}
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&IssueDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Issues) > 0 {
		if err := db.Create(&dto.Issues).Error; err != nil {
			return err
		}
	}

	return nil
}

// orderedSteps preloads tracking steps in insertion order. The last step must
// mirror the order's status for rehydration to succeed.
func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// Get retrieves an order by ID with all its child records.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Steps", orderedSteps).
		Preload("Ratings").
		Preload("Issues").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingBefore retrieves all pending orders created before the cutoff.
func (r *GormOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Steps", orderedSteps).
		Preload("Ratings").
		Preload("Issues").
		Find(&dtos, "status = ? AND created_at < ?", int(order.Pending), cutoff).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
