package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetBuyerAnalyticsQueryIsNotConstructed = errors.New(
		"GetBuyerAnalyticsQuery must be created via NewGetBuyerAnalyticsQuery constructor",
	)
)

// GetBuyerAnalyticsQuery retrieves a buyer's order aggregates over a time
// window: counts, spend, savings, and delivery completion.
type GetBuyerAnalyticsQuery struct {
	buyerID kernel.UUID
	period  Period

	guard guard.ConstructorGuard
}

// NewGetBuyerAnalyticsQuery creates a query for a buyer's analytics summary.
func NewGetBuyerAnalyticsQuery(buyerID kernel.UUID, period Period) (GetBuyerAnalyticsQuery, error) {
	if err := errors.Join(
		buyerID.Validate(),
		period.Validate(),
	); err != nil {
		return GetBuyerAnalyticsQuery{}, err
	}

	return GetBuyerAnalyticsQuery{
		buyerID: buyerID,
		period:  period,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBuyerAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerAnalyticsQueryIsNotConstructed)
}

// BuyerID returns the identifier of the buyer being summarized.
func (q GetBuyerAnalyticsQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// Period returns the analytics window.
func (q GetBuyerAnalyticsQuery) Period() Period {
	return q.period
}

// BuyerAnalyticsResponse is the buyer's order summary over the window.
// All fields are zero when the window holds no orders.
type BuyerAnalyticsResponse struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalSaved        float64 `json:"totalSaved"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	DeliveredOrders   int     `json:"deliveredOrders"`
}
