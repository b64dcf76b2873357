package access

// Permission tags. Closed vocabulary; checked independently of the role
// hierarchy.
const (
	PermViewProducts       = "view_products"
	PermManageProducts     = "manage_products"
	PermViewInventory      = "view_inventory"
	PermManageInventory    = "manage_inventory"
	PermRecordMortality    = "record_mortality"
	PermViewReports        = "view_reports"
	PermManageOrders       = "manage_orders"
	PermProcessDeliveries  = "process_deliveries"
	PermManageContent      = "manage_content"
	PermManageUsers        = "manage_users"
	PermManageWholesale    = "manage_wholesale"
	PermViewWholesalePrice = "view_wholesale_pricing"
)

// AllPermissions lists the full vocabulary in a stable order.
var AllPermissions = []string{
	PermViewProducts, PermManageProducts,
	PermViewInventory, PermManageInventory, PermRecordMortality,
	PermViewReports, PermManageOrders, PermProcessDeliveries,
	PermManageContent, PermManageUsers, PermManageWholesale,
	PermViewWholesalePrice,
}

// permissionSet maps each role to its granted permission tags. Admin is
// intentionally absent from most entries: HasPermission short-circuits
// for admin regardless of this table.
var permissionSet = map[string]map[string]struct{}{
	RoleGuest: setOf(PermViewProducts),
	RoleCustomer: setOf(
		PermViewProducts,
	),
	RoleWholesaleCustomer: setOf(
		PermViewProducts, PermViewWholesalePrice,
	),
	RoleEmployee: setOf(
		PermViewProducts, PermViewInventory, PermManageOrders,
	),
	RoleDeliveryDriver: setOf(
		PermViewProducts, PermProcessDeliveries,
	),
	RoleContentCreator: setOf(
		PermViewProducts, PermManageContent,
	),
	RoleInventoryManager: setOf(
		PermViewProducts, PermViewInventory, PermManageInventory,
		PermRecordMortality, PermViewReports,
	),
	RoleManager: setOf(
		PermViewProducts, PermManageProducts, PermViewInventory,
		PermManageInventory, PermRecordMortality, PermViewReports,
		PermManageOrders, PermProcessDeliveries, PermManageContent,
		PermManageWholesale, PermViewWholesalePrice,
	),
	RoleAdmin: setOf(), // implicit: every permission
}

func setOf(perms ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// HasPermission reports whether role holds perm. Admin holds every
// permission in the vocabulary; unknown roles fail closed.
func HasPermission(role, perm string) bool {
	if role == RoleAdmin {
		return true
	}
	set, ok := permissionSet[role]
	if !ok {
		return false
	}
	_, granted := set[perm]
	return granted
}
