package repository

import "github.com/greenhollow/nursery-api/internal/domain/entity"

// ProductRepository is the persistence port for the catalog.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// Deactivate soft-deletes: products referenced by order history are
	// never physically removed.
	Deactivate(id string) error
}
