package party

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrPartyIsNotConstructed is returned when a Party instance was not created
	// through the NewParty factory method.
	ErrPartyIsNotConstructed = errors.New("Party must be created via NewParty constructor")
)

// Role identifies which side of the marketplace a party acts on.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleBuyer is the party purchasing goods through the marketplace
	// (referred to as "vendor" in user-facing language).
	RoleBuyer

	// RoleSeller is the party fulfilling orders from a published catalog
	// (referred to as "supplier" in user-facing language).
	RoleSeller
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "Unknown",
		RoleBuyer:   "Buyer",
		RoleSeller:  "Seller",
	}
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate checks that the role is one of the defined marketplace roles.
func (r Role) Validate() error {
	if r != RoleBuyer && r != RoleSeller {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// RoleFromString parses a role from its wire representation ("buyer"/"seller").
func RoleFromString(s string) (Role, error) {
	switch s {
	case "buyer":
		return RoleBuyer, nil
	case "seller":
		return RoleSeller, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Profile is the role-specific variant of a party record. Exactly one concrete
// profile exists per role: BuyerProfile for buyers, SellerProfile for sellers.
// The sealed interface makes the variant set closed, so a Party behaves as a
// tagged union rather than an open inheritance hierarchy.
type Profile interface {
	isProfile()
	role() Role
}

// BuyerProfile carries the buyer-specific attributes of a party.
type BuyerProfile struct {
	Name       string
	Phone      string
	PostalCode kernel.PostalCode
	Address    string
}

func (BuyerProfile) isProfile() {}
func (BuyerProfile) role() Role { return RoleBuyer }

// SellerProfile carries the seller-specific attributes of a party.
type SellerProfile struct {
	BusinessName string
	Phone        string
	PostalCode   kernel.PostalCode
	Categories   []string
}

func (SellerProfile) isProfile() {}
func (SellerProfile) role() Role { return RoleSeller }

// Party represents one side of an order: either a buyer or a seller.
// It is a tagged union of identity, role and the role-specific profile.
//
// Party follows these invariants:
//   - Must have a valid unique identifier
//   - Role must be RoleBuyer or RoleSeller
//   - The profile variant must agree with the role
//   - Can only be created through the NewParty constructor
type Party struct {
	id        kernel.UUID
	partyRole Role
	profile   Profile

	isConstructed bool
}

// NewParty creates a new Party with validation. The profile variant must match
// the declared role; a buyer with a SellerProfile (or vice versa) is rejected.
func NewParty(id kernel.UUID, role Role, profile Profile) (*Party, error) {
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	if profile == nil {
		return nil, errs.NewValueIsRequiredError("profile")
	}

	if profile.role() != role {
		return nil, errs.NewValueIsInvalidErrorWithCause("profile",
			fmt.Errorf("%s profile does not match role %s", profile.role(), role))
	}

	return &Party{
		id:            id,
		partyRole:     role,
		profile:       profile,
		isConstructed: true,
	}, nil
}

// Validate ensures the Party instance was properly constructed through NewParty.
func (p *Party) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartyIsNotConstructed
	}
	return nil
}

// ID returns the party's unique identifier.
func (p *Party) ID() kernel.UUID {
	return p.id
}

// Role returns the marketplace role of the party.
func (p *Party) Role() Role {
	return p.partyRole
}

// Profile returns the role-specific profile variant.
func (p *Party) Profile() Profile {
	return p.profile
}

// BuyerProfile returns the buyer variant of the profile.
// The boolean reports whether the party is a buyer.
func (p *Party) BuyerProfile() (BuyerProfile, bool) {
	bp, ok := p.profile.(BuyerProfile)
	return bp, ok
}

// SellerProfile returns the seller variant of the profile.
// The boolean reports whether the party is a seller.
func (p *Party) SellerProfile() (SellerProfile, bool) {
	sp, ok := p.profile.(SellerProfile)
	return sp, ok
}

// IsEqual compares two parties by their unique identifiers.
func (p *Party) IsEqual(other *Party) bool {
	return other != nil && p.id.IsEqual(other.id)
}
