package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	id, sku, slug, name, botanical_name, description, price, wholesale_price,
	is_living_stock, attributes, active, created_at, updated_at`

// ProductRepo implements the catalog store over PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constructs the adapter. Pass pool or tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserts the product. Returns ErrDuplicate when the SKU or the
// slug is taken.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Slug, product.Name,
		nullable(product.BotanicalName), nullable(product.Description),
		product.Price, product.WholesalePrice, product.IsLivingStock,
		product.Attributes, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySlug fetches one product by its URL slug.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, slug))
}

// List returns a page of the catalog, newest first.
func (r *ProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update rewrites the mutable fields. Returns ErrDuplicate on a SKU or
// slug collision.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $1, slug = $2, name = $3, botanical_name = $4,
		    description = $5, price = $6, wholesale_price = $7,
		    is_living_stock = $8, attributes = $9, active = $10, updated_at = $11
		WHERE id = $12`
	tag, err := r.q.Exec(context.Background(), query,
		product.SKU, product.Slug, product.Name,
		nullable(product.BotanicalName), nullable(product.Description),
		product.Price, product.WholesalePrice, product.IsLivingStock,
		product.Attributes, product.Active, time.Now(), product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes the product.
func (r *ProductRepo) Deactivate(id string) error {
	query := `UPDATE products SET active = FALSE, updated_at = $1 WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var botanical, description *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Slug, &p.Name, &botanical, &description,
		&p.Price, &p.WholesalePrice, &p.IsLivingStock, &p.Attributes,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if botanical != nil {
		p.BotanicalName = *botanical
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}
