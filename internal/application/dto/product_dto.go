package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body for POST /api/products.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,max=64"`
	Name           string          `json:"name" validate:"required,max=200"`
	BotanicalName  string          `json:"botanical_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	IsLivingStock  bool            `json:"is_living_stock"`
	Attributes     json.RawMessage `json:"attributes,omitempty"`
}

// UpdateProductRequest is the body for PUT /api/products/:id. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	BotanicalName  *string          `json:"botanical_name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price,omitempty"`
	Attributes     json.RawMessage  `json:"attributes,omitempty"`
}

// ProductResponse is the catalog entry shape returned to callers.
// WholesalePrice is zeroed for callers without wholesale pricing access.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Slug           string          `json:"slug"`
	Name           string          `json:"name"`
	BotanicalName  string          `json:"botanical_name,omitempty"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	WholesalePrice decimal.Decimal `json:"wholesale_price,omitempty"`
	IsLivingStock  bool            `json:"is_living_stock"`
	Attributes     json.RawMessage `json:"attributes,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
