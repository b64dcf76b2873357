package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest is the body for POST /api/inventory/items.
type CreateInventoryItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	VariantID    string          `json:"variant_id,omitempty"`
	Location     string          `json:"location,omitempty"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// ReceiveStockRequest is the body for POST /api/inventory/items/:id/receive.
type ReceiveStockRequest struct {
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RecordMortalityRequest is the body for POST /api/inventory/items/:id/mortality.
// Season is inferred from the calendar when omitted.
type RecordMortalityRequest struct {
	Reason   string          `json:"reason"`
	Quantity decimal.Decimal `json:"quantity"`
	Season   string          `json:"season,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// AdjustStockRequest is the body for POST /api/inventory/items/:id/adjust.
// Quantity is signed: positive adds, negative removes.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// ReserveStockRequest is the body for reserve/release endpoints.
type ReserveStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// InventoryItemResponse is the stock record shape returned to callers.
// Available is derived at render time, never read from storage.
type InventoryItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	VariantID        string          `json:"variant_id,omitempty"`
	Location         string          `json:"location,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	Available        decimal.Decimal `json:"available"`
	ReorderLevel     decimal.Decimal `json:"reorder_level"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LowStock         bool            `json:"low_stock"`
	LastRestockedAt  *time.Time      `json:"last_restocked_at,omitempty"`
}

// MovementResponse is one audit-trail entry.
type MovementResponse struct {
	ID        string          `json:"id"`
	EventID   string          `json:"event_id"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Reason    string          `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MortalityLogResponse is one mortality record.
type MortalityLogResponse struct {
	ID              string          `json:"id"`
	EventID         string          `json:"event_id"`
	ItemID          string          `json:"item_id"`
	ProductID       string          `json:"product_id"`
	Reason          string          `json:"reason"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalLoss       decimal.Decimal `json:"total_loss"`
	Season          string          `json:"season"`
	DaysInInventory int             `json:"days_in_inventory"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
