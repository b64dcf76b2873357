package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the on-hand stock record for a (product, optional
// variant) pair at a yard location.
//
// Invariants: Quantity >= 0, 0 <= ReservedQuantity <= Quantity.
// TotalValue is Quantity * UnitCost, recomputed on every mutation.
// Available stock is always derived (see inventory.Available), never
// stored, so it cannot drift.
type InventoryItem struct {
	ID               string
	ProductID        string
	VariantID        string // empty when the product has no variants
	Location         string // yard section, greenhouse, ...
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	ReorderLevel     decimal.Decimal
	UnitCost         decimal.Decimal // weighted average; zero when unknown
	TotalValue       decimal.Decimal
	LastRestockedAt  *time.Time
	Active           bool // soft deactivation while order history references the item
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PlantLifecycle is the optional 1:1 care record attached to an
// InventoryItem holding living stock.
//
// Invariant: DeathDate is non-nil iff IsAlive is false. Death is only
// recorded when a mortality event brings the item's quantity to zero.
type PlantLifecycle struct {
	ID           string
	ItemID       string
	DaysInYard   int
	HealthStatus string // healthy, stressed, declining
	IsAlive      bool
	DeathDate    *time.Time
	DeathReason  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
