package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// PriceSource records where a line item's unit price came from. Tagging the
// source makes the catalog-miss trust boundary structurally visible: a
// downstream consumer can tell a verified catalog price from one the caller
// supplied.
type PriceSource int

const (
	// PriceSourceUnknown represents an invalid or undefined price source.
	PriceSourceUnknown PriceSource = iota

	// PriceFromCatalog means the price was resolved from the seller's live catalog.
	PriceFromCatalog

	// PriceFromClient means the item missed the catalog and the buyer-supplied
	// price was accepted as a fallback. Such prices are unverified.
	PriceFromClient
)

// String returns the wire representation of the price source.
func (s PriceSource) String() string {
	switch s {
	case PriceFromCatalog:
		return "catalog"
	case PriceFromClient:
		return "client"
	default:
		return "unknown"
	}
}

// Validate checks the price source is one of the defined sources.
func (s PriceSource) Validate() error {
	if s != PriceFromCatalog && s != PriceFromClient {
		return errs.NewValueIsInvalidErrorWithCause("price source",
			fmt.Errorf("%d is not a valid price source", s))
	}
	return nil
}

// LineItem is one settled product line of an order. It is immutable once the
// order is created: the resolved unit price, line total and the reference
// market price used for savings are fixed at settlement time.
type LineItem struct { //nolint:recvcheck //using for validation
	productName string
	category    string
	quantity    int
	unit        string
	unitPrice   float64
	lineTotal   float64
	marketPrice float64
	priceSource PriceSource

	guard guard.ConstructorGuard
}

// NewLineItem creates a settled line item. The line total is derived as
// quantity x unit price and cannot be supplied by the caller.
func NewLineItem(
	productName string,
	category string,
	quantity int,
	unit string,
	unitPrice float64,
	marketPrice float64,
	priceSource PriceSource,
) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setUnitPrice(unitPrice),
		item.setMarketPrice(marketPrice),
		item.setPriceSource(priceSource),
	); err != nil {
		return LineItem{}, err
	}

	item.category = category
	item.lineTotal = float64(item.quantity) * item.unitPrice
	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductName returns the settled product name.
func (i LineItem) ProductName() string {
	return i.productName
}

// Category returns the product category, possibly empty.
func (i LineItem) Category() string {
	return i.category
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Unit returns the unit the product is sold in.
func (i LineItem) Unit() string {
	return i.unit
}

// UnitPrice returns the resolved per-unit price.
func (i LineItem) UnitPrice() float64 {
	return i.unitPrice
}

// LineTotal returns quantity x unit price.
func (i LineItem) LineTotal() float64 {
	return i.lineTotal
}

// MarketPrice returns the per-unit reference price used for savings.
func (i LineItem) MarketPrice() float64 {
	return i.marketPrice
}

// Source returns where the unit price was resolved from.
func (i LineItem) Source() PriceSource {
	return i.priceSource
}

func (i *LineItem) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	i.unit = unit
	return nil
}

func (i *LineItem) setUnitPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	i.unitPrice = price
	return nil
}

func (i *LineItem) setMarketPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("market price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	i.marketPrice = price
	return nil
}

func (i *LineItem) setPriceSource(source PriceSource) error {
	if err := source.Validate(); err != nil {
		return err
	}
	i.priceSource = source
	return nil
}
