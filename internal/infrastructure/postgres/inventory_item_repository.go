package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `
	id, product_id, variant_id, location, quantity, reserved_quantity,
	reorder_level, unit_cost, total_value, last_restocked_at, active,
	created_at, updated_at`

// InventoryItemRepo implements InventoryItemRepository over PostgreSQL
// (usable with pool or tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository constructs the adapter. Pass pool or tx.
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persists a new stock record.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, nullable(item.VariantID), item.Location,
		item.Quantity, item.ReservedQuantity, item.ReorderLevel,
		item.UnitCost, item.TotalValue, item.LastRestockedAt, item.Active,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID fetches a stock record without locking.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate fetches a stock record and locks the row for the duration
// of the enclosing transaction (SELECT ... FOR UPDATE). Only meaningful
// when the repo is bound to a tx.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update persists quantity/valuation changes.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $2, reserved_quantity = $3, reorder_level = $4,
		    unit_cost = $5, total_value = $6, last_restocked_at = $7,
		    active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Quantity, item.ReservedQuantity, item.ReorderLevel,
		item.UnitCost, item.TotalValue, item.LastRestockedAt, item.Active,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// ListByProduct lists stock records for one product.
func (r *InventoryItemRepo) ListByProduct(productID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE product_id = $1 AND active ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list items by product: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListLowStock lists active items at or below their reorder level.
func (r *InventoryItemRepo) ListLowStock(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE active AND quantity <= reorder_level
		ORDER BY quantity - reorder_level, updated_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Deactivate soft-deletes: order and audit history keep referencing the row.
func (r *InventoryItemRepo) Deactivate(id string) error {
	query := `UPDATE inventory_items SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) scanOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var variantID *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.ProductID, &variantID, &it.Location,
		&it.Quantity, &it.ReservedQuantity, &it.ReorderLevel,
		&it.UnitCost, &it.TotalValue, &it.LastRestockedAt, &it.Active,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	if variantID != nil {
		it.VariantID = *variantID
	}
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		var variantID *string
		if err := rows.Scan(
			&it.ID, &it.ProductID, &variantID, &it.Location,
			&it.Quantity, &it.ReservedQuantity, &it.ReorderLevel,
			&it.UnitCost, &it.TotalValue, &it.LastRestockedAt, &it.Active,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		if variantID != nil {
			it.VariantID = *variantID
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
