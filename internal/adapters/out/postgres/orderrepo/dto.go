// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The delivery destination and payment record are embedded; line items,
// tracking steps, ratings and issues live in child tables keyed by order id.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex;size:32"`
	BuyerID     uuid.UUID `gorm:"type:uuid;index"`
	SellerID    uuid.UUID `gorm:"type:uuid;index"`

	Subtotal          float64
	DeliveryCharge    float64
	Total             float64
	MarketPriceTotal  float64
	SavedAmount       float64
	SavingsPercentage float64

	Status       int `gorm:"index"`
	Instructions string
	CancelledBy  string

	CreatedAt    time.Time `gorm:"index"`
	ConfirmedAt  *time.Time
	PackedAt     *time.Time
	DispatchedAt *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time

	Delivery DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Payment  PaymentDTO  `gorm:"embedded;embeddedPrefix:payment_"`

	Version int

	Items   []LineItemDTO     `gorm:"foreignKey:OrderID"`
	Steps   []TrackingStepDTO `gorm:"foreignKey:OrderID"`
	Ratings []RatingDTO       `gorm:"foreignKey:OrderID"`
	Issues  []IssueDTO        `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO represents the embedded delivery destination within the order table.
type DeliveryDTO struct {
	Street        string
	City          string
	State         string
	PostalCode    string `gorm:"index"`
	ScheduledDate time.Time
	TimeWindow    string
	Method        string
}

// PaymentDTO represents the embedded payment record within the order table.
type PaymentDTO struct {
	Method         string
	Status         int
	Amount         float64
	FinalAmount    float64
	TransactionRef string
	PaidAt         *time.Time
}

// LineItemDTO represents one settled product line of an order.
type LineItemDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductName string
	Category    string
	Quantity    int
	Unit        string
	UnitPrice   float64
	LineTotal   float64
	MarketPrice float64
	PriceSource int
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// TrackingStepDTO represents one append-only entry of an order's tracking history.
type TrackingStepDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Status      int
	Location    string
	Description string
	RecordedAt  time.Time
}

// TableName specifies the database table name for tracking steps.
func (TrackingStepDTO) TableName() string {
	return "tracking_steps"
}

// RatingDTO represents a party's rating of an order. RatedBy is "buyer" or
// "seller"; at most one row exists per order and side.
type RatingDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	RatedBy  string    `gorm:"size:8"`
	Overall  int
	Quality  int
	Delivery int
	Service  int
	Value    int
	Review   string
	RatedAt  time.Time
}

// TableName specifies the database table name for order ratings.
func (RatingDTO) TableName() string {
	return "order_ratings"
}

// IssueDTO represents one issue raised against an order.
type IssueDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	RaisedBy    uuid.UUID `gorm:"type:uuid"`
	Subject     string
	Description string
	Status      int
	OpenedAt    time.Time
	ResolvedAt  *time.Time
}

// TableName specifies the database table name for order issues.
func (IssueDTO) TableName() string {
	return "order_issues"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderNumber:       aggregate.OrderNumber().String(),
		BuyerID:           aggregate.BuyerID().Bytes(),
		SellerID:          aggregate.SellerID().Bytes(),
		Subtotal:          aggregate.Subtotal(),
		DeliveryCharge:    aggregate.DeliveryCharge(),
		Total:             aggregate.Total(),
		MarketPriceTotal:  aggregate.MarketPriceTotal(),
		SavedAmount:       aggregate.SavedAmount(),
		SavingsPercentage: aggregate.SavingsPercentage(),
		Status:            int(aggregate.Status()),
		Instructions:      aggregate.Instructions(),
		CancelledBy:       aggregate.CancelledBy(),
		CreatedAt:         aggregate.CreatedAt(),
		ConfirmedAt:       aggregate.ConfirmedAt(),
		PackedAt:          aggregate.PackedAt(),
		DispatchedAt:      aggregate.DispatchedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CancelledAt:       aggregate.CancelledAt(),
		Delivery: DeliveryDTO{
			Street:        aggregate.Delivery().Address().Street,
			City:          aggregate.Delivery().Address().City,
			State:         aggregate.Delivery().Address().State,
			PostalCode:    aggregate.Delivery().Address().PostalCode,
			ScheduledDate: aggregate.Delivery().ScheduledDate(),
			TimeWindow:    aggregate.Delivery().TimeWindow(),
			Method:        aggregate.Delivery().Method(),
		},
		Payment: PaymentDTO{
			Method:         aggregate.Payment().Method(),
			Status:         int(aggregate.Payment().Status()),
			Amount:         aggregate.Payment().Amount(),
			FinalAmount:    aggregate.Payment().FinalAmount(),
			TransactionRef: aggregate.Payment().TransactionRef(),
			PaidAt:         aggregate.Payment().PaidAt(),
		},
		Version: aggregate.Version(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, LineItemDTO{
			OrderID:     dto.ID,
			ProductName: item.ProductName(),
			Category:    item.Category(),
			Quantity:    item.Quantity(),
			Unit:        item.Unit(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
			MarketPrice: item.MarketPrice(),
			PriceSource: int(item.Source()),
		})
	}

	for _, step := range aggregate.Delivery().Steps() {
		dto.Steps = append(dto.Steps, TrackingStepDTO{
			OrderID:     dto.ID,
			Status:      int(step.Status()),
			Location:    step.Location(),
			Description: step.Description(),
			RecordedAt:  step.At(),
		})
	}

	if rating := aggregate.BuyerRating(); rating != nil {
		dto.Ratings = append(dto.Ratings, ratingToDTO(dto.ID, "buyer", *rating))
	}
	if rating := aggregate.SellerRating(); rating != nil {
		dto.Ratings = append(dto.Ratings, ratingToDTO(dto.ID, "seller", *rating))
	}

	for _, issue := range aggregate.Issues() {
		dto.Issues = append(dto.Issues, IssueDTO{
			ID:          issue.ID().Bytes(),
			OrderID:     dto.ID,
			RaisedBy:    issue.RaisedBy().Bytes(),
			Subject:     issue.Subject(),
			Description: issue.Description(),
			Status:      int(issue.Status()),
			OpenedAt:    issue.OpenedAt(),
			ResolvedAt:  issue.ResolvedAt(),
		})
	}

	return dto
}

func ratingToDTO(orderID uuid.UUID, side string, rating order.Rating) RatingDTO {
	return RatingDTO{
		OrderID:  orderID,
		RatedBy:  side,
		Overall:  rating.Overall(),
		Quality:  rating.Scores().Quality,
		Delivery: rating.Scores().Delivery,
		Service:  rating.Scores().Service,
		Value:    rating.Scores().Value,
		Review:   rating.Review(),
		RatedAt:  rating.RatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the tracking history,
// payment record, ratings and issues using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(
			itemDTO.ProductName, itemDTO.Category, itemDTO.Quantity, itemDTO.Unit,
			itemDTO.UnitPrice, itemDTO.MarketPrice, order.PriceSource(itemDTO.PriceSource),
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	steps := make([]order.TrackingStep, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		step, stepErr := order.NewTrackingStep(
			order.Status(stepDTO.Status), stepDTO.Location, stepDTO.Description, stepDTO.RecordedAt,
		)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	delivery := order.RestoreDeliveryRecord(
		order.Address{
			Street:     dto.Delivery.Street,
			City:       dto.Delivery.City,
			State:      dto.Delivery.State,
			PostalCode: dto.Delivery.PostalCode,
		},
		dto.Delivery.ScheduledDate,
		dto.Delivery.TimeWindow,
		dto.Delivery.Method,
		dto.DeliveryCharge,
		steps,
	)

	payment := order.RestorePaymentRecord(
		dto.Payment.Method,
		order.PaymentStatus(dto.Payment.Status),
		dto.Payment.Amount,
		dto.Payment.FinalAmount,
		dto.Payment.TransactionRef,
		dto.Payment.PaidAt,
	)

	var buyerRating, sellerRating *order.Rating
	for _, ratingDTO := range dto.Ratings {
		rating, ratingErr := order.NewRating(order.RatingScores{
			Quality:  ratingDTO.Quality,
			Delivery: ratingDTO.Delivery,
			Service:  ratingDTO.Service,
			Value:    ratingDTO.Value,
		}, ratingDTO.Review, ratingDTO.RatedAt)
		if ratingErr != nil {
			return nil, ratingErr
		}

		switch ratingDTO.RatedBy {
		case "buyer":
			buyerRating = &rating
		case "seller":
			sellerRating = &rating
		}
	}

	issues := make([]*order.Issue, 0, len(dto.Issues))
	for _, issueDTO := range dto.Issues {
		issueID, issueErr := kernel.UUIDFromBytes(issueDTO.ID[:])
		if issueErr != nil {
			return nil, issueErr
		}

		raisedBy, issueErr := kernel.UUIDFromBytes(issueDTO.RaisedBy[:])
		if issueErr != nil {
			return nil, issueErr
		}

		issue, issueErr := order.RestoreIssue(
			issueID, raisedBy, issueDTO.Subject, issueDTO.Description,
			order.IssueStatus(issueDTO.Status), issueDTO.OpenedAt, issueDTO.ResolvedAt,
		)
		if issueErr != nil {
			return nil, issueErr
		}
		issues = append(issues, issue)
	}

	return order.RestoreOrder(
		id, number, buyerID, sellerID, items,
		dto.Subtotal, dto.DeliveryCharge, dto.Total, dto.MarketPriceTotal,
		dto.SavedAmount, dto.SavingsPercentage,
		order.Status(dto.Status), dto.Instructions, dto.CancelledBy,
		dto.CreatedAt,
		dto.ConfirmedAt, dto.PackedAt, dto.DispatchedAt, dto.DeliveredAt, dto.CancelledAt,
		delivery, payment,
		buyerRating, sellerRating, issues,
		dto.Version,
	)
}
