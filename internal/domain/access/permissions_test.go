package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenhollow/nursery-api/internal/domain/access"
)

// Admin implicitly holds every permission in the vocabulary, whatever
// the table says.
func TestHasPermission_AdminHasEverything(t *testing.T) {
	for _, perm := range access.AllPermissions {
		assert.True(t, access.HasPermission(access.RoleAdmin, perm),
			"admin must hold %s", perm)
	}
}

func TestHasPermission_TableLookup(t *testing.T) {
	cases := []struct {
		role string
		perm string
		want bool
	}{
		{access.RoleGuest, access.PermViewProducts, true},
		{access.RoleGuest, access.PermViewInventory, false},
		{access.RoleCustomer, access.PermViewProducts, true},
		{access.RoleCustomer, access.PermViewWholesalePrice, false},
		{access.RoleWholesaleCustomer, access.PermViewWholesalePrice, true},
		{access.RoleEmployee, access.PermViewInventory, true},
		{access.RoleEmployee, access.PermManageInventory, false},
		{access.RoleDeliveryDriver, access.PermProcessDeliveries, true},
		{access.RoleDeliveryDriver, access.PermManageOrders, false},
		{access.RoleContentCreator, access.PermManageContent, true},
		{access.RoleInventoryManager, access.PermManageInventory, true},
		{access.RoleInventoryManager, access.PermRecordMortality, true},
		{access.RoleInventoryManager, access.PermManageWholesale, false},
		{access.RoleManager, access.PermManageWholesale, true},
		{access.RoleManager, access.PermManageUsers, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, access.HasPermission(tc.role, tc.perm),
			"HasPermission(%s, %s)", tc.role, tc.perm)
	}
}

// Unknown roles fail closed.
func TestHasPermission_UnknownRoleDenied(t *testing.T) {
	for _, perm := range access.AllPermissions {
		assert.False(t, access.HasPermission("superuser", perm))
		assert.False(t, access.HasPermission("", perm))
	}
}

// Pure lookup: identical inputs always produce identical outputs.
func TestHasPermission_Idempotent(t *testing.T) {
	first := access.HasPermission(access.RoleEmployee, access.PermViewInventory)
	second := access.HasPermission(access.RoleEmployee, access.PermViewInventory)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

func TestHasRoleLevel(t *testing.T) {
	assert.True(t, access.HasRoleLevel(access.RoleAdmin, access.RoleManager))
	assert.True(t, access.HasRoleLevel(access.RoleManager, access.RoleManager))
	assert.True(t, access.HasRoleLevel(access.RoleInventoryManager, access.RoleEmployee))
	assert.False(t, access.HasRoleLevel(access.RoleCustomer, access.RoleEmployee))
	assert.False(t, access.HasRoleLevel(access.RoleGuest, access.RoleCustomer))

	// Unknown roles fail closed on either side.
	assert.False(t, access.HasRoleLevel("superuser", access.RoleGuest))
	assert.False(t, access.HasRoleLevel(access.RoleAdmin, "superuser"))
}
