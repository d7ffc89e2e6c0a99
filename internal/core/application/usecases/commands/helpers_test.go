package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/party"

	"github.com/stretchr/testify/require"
)

func newBuyer(t *testing.T, id kernel.UUID) *party.Party {
	t.Helper()
	code, err := kernel.NewPostalCode("400001")
	require.NoError(t, err)
	p, err := party.NewParty(id, party.RoleBuyer, party.BuyerProfile{
		Name:       "Asha Stores",
		Phone:      "9876543210",
		PostalCode: code,
		Address:    "12 Market Road",
	})
	require.NoError(t, err)
	return p
}

func newSeller(t *testing.T, id kernel.UUID) *party.Party {
	t.Helper()
	code, err := kernel.NewPostalCode("400003")
	require.NoError(t, err)
	p, err := party.NewParty(id, party.RoleSeller, party.SellerProfile{
		BusinessName: "Fresh Farms",
		Phone:        "9123456780",
		PostalCode:   code,
		Categories:   []string{"vegetables"},
	})
	require.NoError(t, err)
	return p
}

func newCatalogEntry(t *testing.T, sellerID kernel.UUID, name string, price float64, stock int) *catalog.Entry {
	t.Helper()
	e, err := catalog.NewEntry(kernel.NewUUID(), sellerID, name, "vegetables", "kg", price, nil, stock, true)
	require.NoError(t, err)
	return e
}

func newTestOrder(t *testing.T, buyerID, sellerID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewLineItem("Onions", "vegetables", 5, "kg", 88, 105.6, order.PriceFromCatalog)
	require.NoError(t, err)

	delivery, err := order.NewDeliveryRecord(
		order.Address{Street: "12 Market Road", City: "Mumbai", PostalCode: "400001"},
		time.Now().Add(24*time.Hour), "morning", "standard", 30,
	)
	require.NoError(t, err)

	number := kernel.NewOrderNumber()

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), number, buyerID, sellerID,
		[]order.LineItem{item}, delivery, "upi", "", time.Now(),
	)
	require.NoError(t, err)
	return aggregate
}

func newDeliveredOrder(t *testing.T, buyerID, sellerID kernel.UUID) *order.Order {
	t.Helper()
	aggregate := newTestOrder(t, buyerID, sellerID)
	require.NoError(t, aggregate.TransitionTo(order.Delivered, "", "Delivered", time.Now()))
	return aggregate
}
