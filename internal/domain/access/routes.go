package access

import "strings"

// routeRule grants access to every path under Prefix to callers at or
// above MinRole, optionally requiring a permission as well.
type routeRule struct {
	Prefix     string
	MinRole    string
	Permission string // empty = role level alone decides
}

// routeRules is evaluated top to bottom, first matching prefix wins.
//
// Ordering contract: rules MUST be declared most-specific-first. A
// sensitive sub-route has to be matched before its looser parent
// prefix; if "/account" (customer) were checked before
// "/account/admin" (admin), the admin sub-route would inherit the
// customer rule because "/account" is a string-prefix of it. Tests pin
// this ordering; keep them green when adding rules.
var routeRules = []routeRule{
	// Admin-only surfaces first. "/products/admin" sits under the public
	// "/products" prefix on purpose: it is the case the ordering exists for.
	{Prefix: "/admin", MinRole: RoleAdmin},
	{Prefix: "/account/admin", MinRole: RoleAdmin},
	{Prefix: "/products/admin", MinRole: RoleAdmin},

	// Staff back office.
	{Prefix: "/staff/inventory", MinRole: RoleInventoryManager},
	{Prefix: "/staff/wholesale", MinRole: RoleManager},
	{Prefix: "/staff/reports", MinRole: RoleInventoryManager},
	// delivery_driver and content_creator share a rank, so these two
	// rules gate on the permission rather than the role level alone.
	{Prefix: "/staff/deliveries", MinRole: RoleDeliveryDriver, Permission: PermProcessDeliveries},
	{Prefix: "/staff/content", MinRole: RoleContentCreator, Permission: PermManageContent},
	{Prefix: "/staff", MinRole: RoleEmployee},

	// Wholesale portal before the general account area.
	{Prefix: "/account/wholesale", MinRole: RoleWholesaleCustomer},
	{Prefix: "/account", MinRole: RoleCustomer},
	{Prefix: "/cart", MinRole: RoleCustomer},
	{Prefix: "/checkout", MinRole: RoleCustomer},

	// Public storefront last. No catch-all: a path matching nothing is
	// denied, whoever asks.
	{Prefix: "/products", MinRole: RoleGuest},
	{Prefix: "/plants", MinRole: RoleGuest},
	{Prefix: "/identify", MinRole: RoleGuest},
	{Prefix: "/login", MinRole: RoleGuest},
	{Prefix: "/register", MinRole: RoleGuest},
}

// CanAccessRoute reports whether role may reach path. The first rule
// whose prefix matches decides; no matching rule denies.
func CanAccessRoute(role, path string) bool {
	for _, rule := range routeRules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if !HasRoleLevel(role, rule.MinRole) {
			return false
		}
		if rule.Permission != "" && !HasPermission(role, rule.Permission) {
			return false
		}
		return true
	}
	return false
}
