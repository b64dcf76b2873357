package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types.
const (
	MovementTypeIN         = "IN"         // stock received
	MovementTypeOUT        = "OUT"        // stock removed (sale, mortality)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // count correction
)

// InventoryMovement is an append-only audit entry for any quantity
// change on an inventory item. Rows are created once and never updated
// or deleted. Quantity is positive for IN, negative for OUT and signed
// for ADJUSTMENT. EventID ties the movement to the operation that
// produced it (a mortality log shares the same EventID).
type InventoryMovement struct {
	ID        string
	EventID   string
	ItemID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
	Reason    string // free-form for adjustments, mortality reason tag for mortality OUTs
	Notes     string
	CreatedAt time.Time
	CreatedBy string // user id
}
