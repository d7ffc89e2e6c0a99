package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetSellerAnalyticsQueryIsNotConstructed = errors.New(
		"GetSellerAnalyticsQuery must be created via NewGetSellerAnalyticsQuery constructor",
	)
)

// GetSellerAnalyticsQuery retrieves a seller's sales aggregates over a time
// window: order counts, revenue, items moved, and fulfilment state.
type GetSellerAnalyticsQuery struct {
	sellerID kernel.UUID
	period   Period

	guard guard.ConstructorGuard
}

// NewGetSellerAnalyticsQuery creates a query for a seller's analytics summary.
func NewGetSellerAnalyticsQuery(sellerID kernel.UUID, period Period) (GetSellerAnalyticsQuery, error) {
	if err := errors.Join(
		sellerID.Validate(),
		period.Validate(),
	); err != nil {
		return GetSellerAnalyticsQuery{}, err
	}

	return GetSellerAnalyticsQuery{
		sellerID: sellerID,
		period:   period,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSellerAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerAnalyticsQueryIsNotConstructed)
}

// SellerID returns the identifier of the seller being summarized.
func (q GetSellerAnalyticsQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// Period returns the analytics window.
func (q GetSellerAnalyticsQuery) Period() Period {
	return q.period
}

// SellerAnalyticsResponse is the seller's sales summary over the window.
// All fields are zero when the window holds no orders.
type SellerAnalyticsResponse struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalSales        float64 `json:"totalSales"`
	TotalItemsSold    int     `json:"totalItemsSold"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	PendingOrders     int     `json:"pendingOrders"`
	DeliveredOrders   int     `json:"deliveredOrders"`
}
