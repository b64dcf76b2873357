package entity

import "time"

// User represents an account in the store: retail or wholesale customer,
// or a member of staff. Role drives every access decision (see
// internal/domain/access); WholesaleStatus tracks the trade-pricing
// application lifecycle and only moves through the fixed transition table.
type User struct {
	ID              string
	Email           string
	PasswordHash    string // bcrypt hash, never the plain password after persisting
	Name            string
	Role            string // one of the access.Role* constants
	WholesaleStatus string // one of the access.Wholesale* constants
	BusinessName    string // wholesale applicants only
	Status          string // active, inactive, suspended
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
