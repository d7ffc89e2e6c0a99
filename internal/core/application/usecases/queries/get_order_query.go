package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the complete view of one order: settled items,
// totals, payment state, and the full tracking history.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LineItemView is one settled product line in the order read model.
type LineItemView struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
	MarketPrice float64 `json:"marketPrice"`
	PriceSource string  `json:"priceSource"`
}

// TrackingStepView is one entry of the order's tracking history.
type TrackingStepView struct {
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// DeliveryView is the destination and tracking portion of the read model.
type DeliveryView struct {
	Street        string             `json:"street"`
	City          string             `json:"city,omitempty"`
	State         string             `json:"state,omitempty"`
	PostalCode    string             `json:"postalCode"`
	ScheduledDate time.Time          `json:"scheduledDate"`
	TimeWindow    string             `json:"timeWindow,omitempty"`
	Method        string             `json:"method,omitempty"`
	Charge        float64            `json:"charge"`
	Steps         []TrackingStepView `json:"steps"`
}

// PaymentView is the payment portion of the read model.
type PaymentView struct {
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	Amount         float64    `json:"amount"`
	FinalAmount    float64    `json:"finalAmount"`
	TransactionRef string     `json:"transactionRef,omitempty"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
}

// RatingView is a party's rating in the read model.
type RatingView struct {
	Overall  int       `json:"overall"`
	Quality  int       `json:"quality"`
	Delivery int       `json:"delivery"`
	Service  int       `json:"service"`
	Value    int       `json:"value"`
	Review   string    `json:"review,omitempty"`
	RatedAt  time.Time `json:"ratedAt"`
}

// IssueView is one issue in the read model.
type IssueView struct {
	ID          kernel.UUID `json:"id"`
	RaisedBy    kernel.UUID `json:"raisedBy"`
	Subject     string      `json:"subject"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	OpenedAt    time.Time   `json:"openedAt"`
	ResolvedAt  *time.Time  `json:"resolvedAt,omitempty"`
}

// OrderResponse is the complete order read model.
type OrderResponse struct {
	ID                kernel.UUID    `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	BuyerID           kernel.UUID    `json:"buyerId"`
	SellerID          kernel.UUID    `json:"sellerId"`
	Status            string         `json:"status"`
	Items             []LineItemView `json:"items"`
	Subtotal          float64        `json:"subtotal"`
	DeliveryCharge    float64        `json:"deliveryCharge"`
	Total             float64        `json:"total"`
	MarketPriceTotal  float64        `json:"marketPriceTotal"`
	SavedAmount       float64        `json:"savedAmount"`
	SavingsPercentage float64        `json:"savingsPercentage"`
	Instructions      string         `json:"instructions,omitempty"`
	CancelledBy       string         `json:"cancelledBy,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	ConfirmedAt       *time.Time     `json:"confirmedAt,omitempty"`
	PackedAt          *time.Time     `json:"packedAt,omitempty"`
	DispatchedAt      *time.Time     `json:"dispatchedAt,omitempty"`
	DeliveredAt       *time.Time     `json:"deliveredAt,omitempty"`
	CancelledAt       *time.Time     `json:"cancelledAt,omitempty"`
	Delivery          DeliveryView   `json:"delivery"`
	Payment           PaymentView    `json:"payment"`
	BuyerRating       *RatingView    `json:"buyerRating,omitempty"`
	SellerRating      *RatingView    `json:"sellerRating,omitempty"`
	Issues            []IssueView    `json:"issues"`
}
