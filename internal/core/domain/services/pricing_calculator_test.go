package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(t *testing.T, name string, quantity int, unitPrice, marketPrice float64) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(name, "", quantity, "kg", unitPrice, marketPrice, order.PriceFromCatalog)
	require.NoError(t, err)
	return item
}

func serviceArea(t *testing.T, sellerID kernel.UUID, code string, charge float64) catalog.ServiceArea {
	t.Helper()
	postalCode, err := kernel.NewPostalCode(code)
	require.NoError(t, err)
	area, err := catalog.NewServiceArea(sellerID, postalCode, charge, 0)
	require.NoError(t, err)
	return area
}

func TestPricingCalculator_Price(t *testing.T) {
	calculator := services.NewPricingCalculator()
	sellerID := kernel.NewUUID()

	t.Run("should sum line totals and apply matched area surcharge", func(t *testing.T) {
		items := []order.LineItem{
			lineItem(t, "Onions", 5, 88, 105.6),
			lineItem(t, "Tomatoes", 1, 30, 36),
		}
		areas := []catalog.ServiceArea{
			serviceArea(t, sellerID, "400001", 30),
			serviceArea(t, sellerID, "400003", 50),
		}
		code, err := kernel.NewPostalCode("400001")
		require.NoError(t, err)

		result := calculator.Price(items, areas, code)

		assert.InDelta(t, 470.0, result.Subtotal, 1e-9)
		assert.InDelta(t, 30.0, result.DeliveryCharge, 1e-9)
		assert.InDelta(t, 500.0, result.Total, 1e-9)
		assert.InDelta(t, 564.0, result.MarketPriceTotal, 1e-9)
		assert.InDelta(t, 94.0, result.SavedAmount, 1e-9)
		assert.InDelta(t, 16.67, result.SavingsPercentage, 1e-9)
	})

	t.Run("should charge nothing when no service area matches", func(t *testing.T) {
		items := []order.LineItem{lineItem(t, "Onions", 5, 88, 105.6)}
		areas := []catalog.ServiceArea{
			serviceArea(t, sellerID, "400001", 30),
			serviceArea(t, sellerID, "400003", 50),
		}
		code, err := kernel.NewPostalCode("400002")
		require.NoError(t, err)

		result := calculator.Price(items, areas, code)

		assert.InDelta(t, 0.0, result.DeliveryCharge, 1e-9)
		assert.InDelta(t, result.Subtotal, result.Total, 1e-9)
	})

	t.Run("should report zero savings on zero market total", func(t *testing.T) {
		code, err := kernel.NewPostalCode("400001")
		require.NoError(t, err)

		result := calculator.Price(nil, nil, code)

		assert.Zero(t, result.Subtotal)
		assert.Zero(t, result.MarketPriceTotal)
		assert.Zero(t, result.SavedAmount)
		assert.Zero(t, result.SavingsPercentage)
	})

	t.Run("should round savings percentage to two decimals", func(t *testing.T) {
		items := []order.LineItem{lineItem(t, "Rice", 3, 100, 110)}
		code, err := kernel.NewPostalCode("400001")
		require.NoError(t, err)

		result := calculator.Price(items, nil, code)

		assert.InDelta(t, 300.0, result.Subtotal, 1e-9)
		assert.InDelta(t, 330.0, result.MarketPriceTotal, 1e-9)
		assert.InDelta(t, 9.09, result.SavingsPercentage, 1e-9)
	})
}
