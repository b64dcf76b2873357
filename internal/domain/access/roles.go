// Package access is the pure access-control evaluator: role hierarchy,
// permission table, route rules and the wholesale status machine. It
// performs no I/O and holds no mutable state; every function is a
// lookup against tables fixed at compile time.
package access

// Roles, from least to most senior.
const (
	RoleGuest             = "guest"
	RoleCustomer          = "customer"
	RoleWholesaleCustomer = "wholesale_customer"
	RoleEmployee          = "employee"
	RoleDeliveryDriver    = "delivery_driver"
	RoleContentCreator    = "content_creator"
	RoleInventoryManager  = "inventory_manager"
	RoleManager           = "manager"
	RoleAdmin             = "admin"
)

// roleRank is the total order used by HasRoleLevel. It is only an
// "is-at-least-this-senior" ordering; permission lookups never consult it.
var roleRank = map[string]int{
	RoleGuest:             0,
	RoleCustomer:          10,
	RoleWholesaleCustomer: 20,
	RoleEmployee:          30,
	RoleDeliveryDriver:    30,
	RoleContentCreator:    30,
	RoleInventoryManager:  40,
	RoleManager:           50,
	RoleAdmin:             60,
}

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// StaffRoles lists every role considered store staff.
var StaffRoles = []string{
	RoleEmployee, RoleDeliveryDriver, RoleContentCreator,
	RoleInventoryManager, RoleManager, RoleAdmin,
}

// HasRoleLevel reports whether role is at least as senior as required.
// Unknown roles (either side) fail closed.
func HasRoleLevel(role, required string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}
