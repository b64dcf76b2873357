package access

// Wholesale account statuses.
const (
	WholesaleNotApplied         = "not_applied"
	WholesaleApplicationPending = "application_pending"
	WholesaleApproved           = "approved"
	WholesaleRejected           = "rejected"
	WholesaleSuspended          = "suspended"
	WholesaleCancelled          = "cancelled" // terminal
)

// wholesaleTransitions is the full transition table. A pair absent from
// the table is invalid regardless of who asks; cancelled has no exits.
var wholesaleTransitions = map[string]map[string]struct{}{
	WholesaleNotApplied:         setOf(WholesaleApplicationPending),
	WholesaleApplicationPending: setOf(WholesaleApproved, WholesaleRejected),
	WholesaleApproved:           setOf(WholesaleSuspended, WholesaleCancelled),
	WholesaleRejected:           setOf(WholesaleApplicationPending),
	WholesaleSuspended:          setOf(WholesaleApproved, WholesaleCancelled),
	WholesaleCancelled:          setOf(),
}

// IsValidWholesaleStatus reports whether status belongs to the closed set.
func IsValidWholesaleStatus(status string) bool {
	_, ok := wholesaleTransitions[status]
	return ok
}

// IsValidWholesaleTransition reports whether from -> to appears in the
// transition table, ignoring the caller entirely.
func IsValidWholesaleTransition(from, to string) bool {
	next, ok := wholesaleTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// CanTransitionWholesaleStatus reports whether role may move an account
// from -> to: the caller needs the wholesale-management permission AND
// the pair must appear in the transition table.
func CanTransitionWholesaleStatus(role, from, to string) bool {
	if !HasPermission(role, PermManageWholesale) {
		return false
	}
	return IsValidWholesaleTransition(from, to)
}
