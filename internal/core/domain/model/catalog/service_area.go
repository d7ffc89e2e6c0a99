package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrServiceAreaIsNotConstructed is returned when a ServiceArea was not
	// created through the NewServiceArea factory method.
	ErrServiceAreaIsNotConstructed = errors.New("ServiceArea must be created via NewServiceArea constructor")
)

// ServiceArea is a seller-declared postal region with a flat delivery
// surcharge. The free-delivery threshold is informational: pricing does not
// enforce it, it is surfaced to buyers at presentation time.
type ServiceArea struct {
	sellerID          kernel.UUID
	postalCode        kernel.PostalCode
	deliveryCharge    float64
	freeDeliveryAbove float64

	isConstructed bool
}

// NewServiceArea creates a service area with validation.
// The delivery charge may be zero but never negative.
func NewServiceArea(
	sellerID kernel.UUID,
	postalCode kernel.PostalCode,
	deliveryCharge float64,
	freeDeliveryAbove float64,
) (ServiceArea, error) {
	if err := errors.Join(
		sellerID.Validate(),
		postalCode.Validate(),
	); err != nil {
		return ServiceArea{}, err
	}

	if deliveryCharge < 0 {
		return ServiceArea{}, errs.NewValueIsInvalidErrorWithCause("delivery charge",
			fmt.Errorf("%v is negative", deliveryCharge))
	}

	if freeDeliveryAbove < 0 {
		return ServiceArea{}, errs.NewValueIsInvalidErrorWithCause("free delivery threshold",
			fmt.Errorf("%v is negative", freeDeliveryAbove))
	}

	return ServiceArea{
		sellerID:          sellerID,
		postalCode:        postalCode,
		deliveryCharge:    deliveryCharge,
		freeDeliveryAbove: freeDeliveryAbove,
		isConstructed:     true,
	}, nil
}

// Validate ensures the ServiceArea was created through the constructor.
func (a ServiceArea) Validate() error {
	if !a.isConstructed {
		return ErrServiceAreaIsNotConstructed
	}
	return nil
}

// SellerID returns the identifier of the seller declaring this area.
func (a ServiceArea) SellerID() kernel.UUID {
	return a.sellerID
}

// PostalCode returns the postal area this declaration covers.
func (a ServiceArea) PostalCode() kernel.PostalCode {
	return a.postalCode
}

// DeliveryCharge returns the flat surcharge for deliveries into this area.
func (a ServiceArea) DeliveryCharge() float64 {
	return a.deliveryCharge
}

// FreeDeliveryAbove returns the minimum order amount for free delivery.
func (a ServiceArea) FreeDeliveryAbove() float64 {
	return a.freeDeliveryAbove
}

// Covers reports whether the area covers the given postal code.
func (a ServiceArea) Covers(code kernel.PostalCode) bool {
	return a.postalCode.IsEqual(code)
}
