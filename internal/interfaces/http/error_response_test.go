package http

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalError_HidesDriverDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		wrapped := fmt.Errorf("insert inventory item: ERROR: duplicate key value violates unique constraint \"inventory_items_pkey\" (SQLSTATE 23505)")
		return internalError(c, wrapped)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "internal server error")
	assert.Contains(t, string(body), "INTERNAL")
	assert.NotContains(t, string(body), "SQLSTATE")
	assert.NotContains(t, string(body), "inventory_items_pkey")
}
