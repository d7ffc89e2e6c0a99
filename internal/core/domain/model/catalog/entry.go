package catalog

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// DefaultMarkupMultiplier derives the reference market price for entries that
// do not declare one: reference = unit price x 1.2.
const DefaultMarkupMultiplier = 1.2

var (
	// ErrEntryIsNotConstructed is returned when a catalog Entry was not created
	// through the NewEntry factory method.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
)

// Entry is one item in a seller's live catalog. It carries the authoritative
// unit price for order settlement and a reference market price used only for
// savings computation, never for charging.
//
// Entry follows these invariants:
//   - Belongs to exactly one seller
//   - Name and unit must be non-empty
//   - Unit price must be positive
//   - A declared market price, when present, must be positive
//   - Stock may never be negative
type Entry struct {
	id          kernel.UUID
	sellerID    kernel.UUID
	name        string
	category    string
	unit        string
	unitPrice   float64
	marketPrice *float64
	stock       int
	active      bool

	isConstructed bool
}

// NewEntry creates a catalog entry with validation. marketPrice may be nil,
// in which case MarketPrice falls back to unitPrice x DefaultMarkupMultiplier.
func NewEntry(
	id kernel.UUID,
	sellerID kernel.UUID,
	name string,
	category string,
	unit string,
	unitPrice float64,
	marketPrice *float64,
	stock int,
	active bool,
) (*Entry, error) {
	e := &Entry{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setSellerID(sellerID),
		e.setName(name),
		e.setUnit(unit),
		e.setUnitPrice(unitPrice),
		e.setMarketPrice(marketPrice),
		e.setStock(stock),
	); err != nil {
		return nil, err
	}

	e.category = category
	e.active = active
	return e, nil
}

// Validate ensures the Entry was properly constructed through NewEntry.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// SellerID returns the identifier of the seller owning this entry.
func (e *Entry) SellerID() kernel.UUID {
	return e.sellerID
}

// Name returns the product name.
func (e *Entry) Name() string {
	return e.name
}

// Category returns the product category, possibly empty.
func (e *Entry) Category() string {
	return e.category
}

// Unit returns the unit the product is sold in (kg, dozen, litre...).
func (e *Entry) Unit() string {
	return e.unit
}

// UnitPrice returns the authoritative per-unit price.
func (e *Entry) UnitPrice() float64 {
	return e.unitPrice
}

// MarketPrice returns the reference market price used for savings computation.
// When the entry declares no reference price, the default markup over the unit
// price is used instead.
func (e *Entry) MarketPrice() float64 {
	if e.marketPrice != nil {
		return *e.marketPrice
	}
	return e.unitPrice * DefaultMarkupMultiplier
}

// DeclaredMarketPrice returns the explicitly declared reference price, or nil
// when the entry carries none. Persistence uses this to round-trip the
// distinction between a declared price and the markup fallback.
func (e *Entry) DeclaredMarketPrice() *float64 {
	if e.marketPrice == nil {
		return nil
	}
	value := *e.marketPrice
	return &value
}

// Stock returns the current stock count.
func (e *Entry) Stock() int {
	return e.stock
}

// IsActive reports whether the entry is currently offered.
func (e *Entry) IsActive() bool {
	return e.active
}

// MatchesName reports whether the entry matches the requested product name.
// Matching is case-insensitive and ignores surrounding whitespace.
func (e *Entry) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), e.name)
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.sellerID = id
	return nil
}

func (e *Entry) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

func (e *Entry) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	e.unit = unit
	return nil
}

func (e *Entry) setUnitPrice(price float64) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%v is not greater than 0", price))
	}
	e.unitPrice = price
	return nil
}

func (e *Entry) setMarketPrice(price *float64) error {
	if price != nil && *price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("market price",
			fmt.Errorf("%v is not greater than 0", *price))
	}
	e.marketPrice = price
	return nil
}

func (e *Entry) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	e.stock = stock
	return nil
}
