package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
)

// fakeProductRepo keeps products in memory and can be forced to report
// a unique-constraint conflict on writes.
type fakeProductRepo struct {
	byID      map[string]*entity.Product
	duplicate bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(product *entity.Product) error {
	if f.duplicate {
		return domain.ErrDuplicate
	}
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.byID))
	for _, p := range f.byID {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(product *entity.Product) error {
	if f.duplicate {
		return domain.ErrDuplicate
	}
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Deactivate(id string) error {
	if p, ok := f.byID[id]; ok {
		p.Active = false
	}
	return nil
}

func createReq(sku, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:           sku,
		Name:          name,
		Price:         decimal.NewFromFloat(12.50),
		IsLivingStock: true,
	}
}

func TestCreate_DuplicateSKUOrSlug(t *testing.T) {
	repo := newFakeProductRepo()
	uc := New(repo)

	repo.duplicate = true
	p, err := uc.Create(context.Background(), createReq("MON-001", "Monstera Deliciosa"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Nil(t, p)
}

func TestUpdate_RenameToTakenSlug(t *testing.T) {
	repo := newFakeProductRepo()
	uc := New(repo)

	p, err := uc.Create(context.Background(), createReq("FIC-001", "Ficus Lyrata"))
	require.NoError(t, err)

	repo.duplicate = true
	name := "Monstera Deliciosa"
	_, err = uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_NotFound(t *testing.T) {
	uc := New(newFakeProductRepo())

	price := decimal.NewFromFloat(9.99)
	_, err := uc.Update(context.Background(), "missing", dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
