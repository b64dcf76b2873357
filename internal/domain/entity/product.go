package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry: a plant, tool or supply the garden center
// sells. SKU and Slug are unique; stock lives in InventoryItem, never here.
// Products referenced by order history are deactivated, never deleted.
type Product struct {
	ID             string
	SKU            string // unique
	Slug           string // unique, URL-safe, derived from the name
	Name           string
	BotanicalName  string // empty for non-plant products
	Description    string
	Price          decimal.Decimal // retail price
	WholesalePrice decimal.Decimal // trade price, shown to approved wholesale accounts
	IsLivingStock  bool            // living stock gets a PlantLifecycle on its inventory items
	Attributes     json.RawMessage // care instructions, pot size, hardiness zone, ...
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
