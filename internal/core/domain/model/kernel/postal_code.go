package kernel

import (
	"strings"

	"marketplace/internal/pkg/errs"
)

// ErrPostalCodeIsNotConstructed is returned when attempting to use an improperly
// initialized PostalCode. Postal codes must be created via NewPostalCode.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"postal code must be created via NewPostalCode constructor")

// PostalCode identifies the buyer's postal area. It is the key used to match
// a delivery address against a seller's declared service areas, so two codes
// are considered the same area only on exact equality.
//
// PostalCode is an immutable value object; the zero value is invalid.
type PostalCode struct {
	value string
}

// NewPostalCode creates a postal code from its string form.
// Surrounding whitespace is trimmed; an empty code is rejected.
func NewPostalCode(s string) (PostalCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PostalCode{}, errs.NewValueIsRequiredError("postal code")
	}
	return PostalCode{value: s}, nil
}

// String returns the postal code as a string.
func (p PostalCode) String() string {
	return p.value
}

// IsEqual compares two postal codes for exact equality.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.value == other.value
}

// Validate checks the postal code was created through the constructor.
func (p PostalCode) Validate() error {
	if p.value == "" {
		return ErrPostalCodeIsNotConstructed
	}
	return nil
}
