package kernel

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderNumberIsNotConstructed is returned when attempting to use an improperly
// initialized OrderNumber. Order numbers must be created via NewOrderNumber or
// OrderNumberFromString.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber or OrderNumberFromString constructors")

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{4}-[0-9A-F]{8}$`)

// OrderNumber is the externally unique, human-readable identifier of an order.
// It is distinct from the internal record id: the number is what buyers and
// sellers see on invoices and support tickets.
//
// The format is "ORD-<year>-<8 hex chars>", e.g. "ORD-2026-9F3A01BC".
// The random suffix is taken from a fresh UUID, which makes collisions within
// a year practically impossible without requiring a database sequence.
//
// OrderNumber is an immutable value object; the zero value is invalid and
// fails validation.
type OrderNumber struct {
	value string
}

// NewOrderNumber generates a fresh order number for the current year.
func NewOrderNumber() OrderNumber {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return OrderNumber{
		value: fmt.Sprintf("ORD-%d-%s", time.Now().Year(), suffix),
	}
}

// OrderNumberFromString reconstructs an order number from its string form,
// typically when rehydrating an order from persistence.
// Returns an error if the string does not match the expected format.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number", fmt.Errorf("%q does not match ORD-<year>-<suffix>", s))
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number in its canonical string form.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks the order number was created through a constructor.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
