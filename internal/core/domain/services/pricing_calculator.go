package services

import (
	"math"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// PricingResult holds the computed monetary summary of an order quote.
// It is what seeds the order aggregate's totals and the payment amount.
type PricingResult struct {
	Subtotal          float64
	DeliveryCharge    float64
	Total             float64
	MarketPriceTotal  float64
	SavedAmount       float64
	SavingsPercentage float64
}

// PricingCalculator computes order totals from settled line items, the
// seller's declared service areas, and the buyer's postal code. It is a pure
// function of its inputs with no side effects.
//
// Rules:
//   - subtotal is the sum of line totals
//   - the delivery charge is the surcharge of the service area whose postal
//     code equals the buyer's, or zero when none matches (the permissive
//     fallback for uncovered areas)
//   - the free-delivery threshold on a service area is informational only
//     and is not applied here
//   - savings percentage is clamped to two-decimal precision and zero when
//     the market total is zero
type PricingCalculator struct{}

// NewPricingCalculator creates a PricingCalculator instance.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Price computes the monetary summary for the given items and destination.
func (c PricingCalculator) Price(
	items []order.LineItem,
	areas []catalog.ServiceArea,
	buyerPostalCode kernel.PostalCode,
) PricingResult {
	subtotal := 0.0
	marketTotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
		marketTotal += float64(item.Quantity()) * item.MarketPrice()
	}

	deliveryCharge := c.deliveryCharge(areas, buyerPostalCode)

	saved := marketTotal - subtotal
	percentage := 0.0
	if marketTotal > 0 {
		percentage = roundTwoDecimals(saved / marketTotal * 100)
	}

	return PricingResult{
		Subtotal:          roundTwoDecimals(subtotal),
		DeliveryCharge:    deliveryCharge,
		Total:             roundTwoDecimals(subtotal + deliveryCharge),
		MarketPriceTotal:  roundTwoDecimals(marketTotal),
		SavedAmount:       roundTwoDecimals(saved),
		SavingsPercentage: percentage,
	}
}

func (c PricingCalculator) deliveryCharge(areas []catalog.ServiceArea, code kernel.PostalCode) float64 {
	for _, area := range areas {
		if area.Covers(code) {
			return area.DeliveryCharge()
		}
	}
	return 0
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
