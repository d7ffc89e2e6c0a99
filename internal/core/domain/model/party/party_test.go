package party_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/party"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyerProfile(t *testing.T) party.BuyerProfile {
	t.Helper()
	pc, err := kernel.NewPostalCode("400001")
	require.NoError(t, err)
	return party.BuyerProfile{Name: "Asha Stores", Phone: "9820012345", PostalCode: pc, Address: "12 Hill Road"}
}

func sellerProfile(t *testing.T) party.SellerProfile {
	t.Helper()
	pc, err := kernel.NewPostalCode("400001")
	require.NoError(t, err)
	return party.SellerProfile{BusinessName: "Fresh Farms", Phone: "9820054321", PostalCode: pc, Categories: []string{"vegetables"}}
}

func TestNewParty(t *testing.T) {
	t.Run("should create buyer with buyer profile", func(t *testing.T) {
		p, err := party.NewParty(kernel.NewUUID(), party.RoleBuyer, buyerProfile(t))

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, party.RoleBuyer, p.Role())

		bp, ok := p.BuyerProfile()
		assert.True(t, ok)
		assert.Equal(t, "Asha Stores", bp.Name)

		_, ok = p.SellerProfile()
		assert.False(t, ok)
	})

	t.Run("should create seller with seller profile", func(t *testing.T) {
		p, err := party.NewParty(kernel.NewUUID(), party.RoleSeller, sellerProfile(t))

		require.NoError(t, err)
		assert.Equal(t, party.RoleSeller, p.Role())

		sp, ok := p.SellerProfile()
		assert.True(t, ok)
		assert.Equal(t, "Fresh Farms", sp.BusinessName)
	})

	t.Run("should reject profile that does not match role", func(t *testing.T) {
		_, err := party.NewParty(kernel.NewUUID(), party.RoleBuyer, sellerProfile(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "profile")
	})

	t.Run("should reject missing profile", func(t *testing.T) {
		_, err := party.NewParty(kernel.NewUUID(), party.RoleSeller, nil)

		require.Error(t, err)
	})

	t.Run("should reject invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := party.NewParty(invalidID, party.RoleBuyer, buyerProfile(t))

		require.Error(t, err)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := party.NewParty(kernel.NewUUID(), party.RoleUnknown, buyerProfile(t))

		require.Error(t, err)
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("should parse known roles", func(t *testing.T) {
		r, err := party.RoleFromString("buyer")
		require.NoError(t, err)
		assert.Equal(t, party.RoleBuyer, r)

		r, err = party.RoleFromString("seller")
		require.NoError(t, err)
		assert.Equal(t, party.RoleSeller, r)
	})

	t.Run("should reject unknown role string", func(t *testing.T) {
		_, err := party.RoleFromString("admin")
		require.Error(t, err)
	})
}

func TestParty_Validate(t *testing.T) {
	t.Run("should fail validation for nil party", func(t *testing.T) {
		var p *party.Party

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, party.ErrPartyIsNotConstructed, err)
	})

	t.Run("should fail validation for directly instantiated party", func(t *testing.T) {
		p := &party.Party{}

		err := p.Validate()

		require.Error(t, err)
	})
}
