package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/nursery-api/internal/application/catalog"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	apphttp "github.com/greenhollow/nursery-api/internal/interfaces/http"
)

// conflictProductRepo answers every write with the duplicate sentinel,
// standing in for a unique violation on sku or slug.
type conflictProductRepo struct{}

func (conflictProductRepo) Create(*entity.Product) error    { return domain.ErrDuplicate }
func (conflictProductRepo) Update(*entity.Product) error    { return domain.ErrDuplicate }
func (conflictProductRepo) Deactivate(string) error         { return nil }
func (conflictProductRepo) GetByID(string) (*entity.Product, error) {
	return nil, nil
}
func (conflictProductRepo) GetBySlug(string) (*entity.Product, error) {
	return nil, nil
}
func (conflictProductRepo) List(bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func TestProductCreate_DuplicateConflict(t *testing.T) {
	handler := apphttp.NewProductHandler(catalog.New(conflictProductRepo{}))

	app := fiber.New()
	app.Post("/products/admin", handler.Create)

	payload := `{"sku":"MON-001","name":"Monstera Deliciosa","price":"24.50","is_living_stock":true}`
	req := httptest.NewRequest(http.MethodPost, "/products/admin", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DUPLICATE")
}
