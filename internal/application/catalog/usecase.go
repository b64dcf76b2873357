// Package catalog manages the product catalog: creation, updates and
// soft deactivation. Stock quantities live in the ledger, never here.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// UseCase handles catalog operations.
type UseCase struct {
	products repository.ProductRepository
}

// New constructs the catalog use case.
func New(products repository.ProductRepository) *UseCase {
	return &UseCase{products: products}
}

// Create adds a product. SKU and the slug derived from the name must be
// unique; duplicates surface as ErrDuplicate from the repository.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.WholesalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	slug := Slugify(in.Name)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Slug:           slug,
		Name:           in.Name,
		BotanicalName:  in.BotanicalName,
		Description:    in.Description,
		Price:          in.Price,
		WholesalePrice: in.WholesalePrice,
		IsLivingStock:  in.IsLivingStock,
		Attributes:     in.Attributes,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns a product by id.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetBySlug returns a product by its URL slug.
func (uc *UseCase) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := uc.products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List pages through the catalog.
func (uc *UseCase) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	return uc.products.List(activeOnly, limit, offset)
}

// Update applies a partial update; a name change re-derives the slug.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = *in.Name
		p.Slug = Slugify(*in.Name)
	}
	if in.BotanicalName != nil {
		p.BotanicalName = *in.BotanicalName
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.WholesalePrice != nil {
		if in.WholesalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.WholesalePrice = *in.WholesalePrice
	}
	if in.Attributes != nil {
		p.Attributes = in.Attributes
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate soft-deletes: the row stays for order history.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.products.Deactivate(id)
}
