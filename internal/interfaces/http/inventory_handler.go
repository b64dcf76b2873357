package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhollow/nursery-api/internal/application/catalog"
	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/application/ledger"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	domaininv "github.com/greenhollow/nursery-api/internal/domain/inventory"
)

// InventoryHandler handles the stock ledger endpoints (staff only).
type InventoryHandler struct {
	uc      *ledger.UseCase
	catalog *catalog.UseCase
}

// NewInventoryHandler constructs the handler.
func NewInventoryHandler(uc *ledger.UseCase, catalogUC *catalog.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, catalog: catalogUC}
}

func toItemResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:               item.ID,
		ProductID:        item.ProductID,
		VariantID:        item.VariantID,
		Location:         item.Location,
		Quantity:         item.Quantity,
		ReservedQuantity: item.ReservedQuantity,
		Available:        domaininv.Available(item),
		ReorderLevel:     item.ReorderLevel,
		UnitCost:         item.UnitCost,
		TotalValue:       item.TotalValue,
		LowStock:         domaininv.IsLowStock(item),
		LastRestockedAt:  item.LastRestockedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		EventID:   m.EventID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		TotalCost: m.TotalCost,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

func toMortalityResponse(m *entity.MortalityLog) *dto.MortalityLogResponse {
	return &dto.MortalityLogResponse{
		ID:              m.ID,
		EventID:         m.EventID,
		ItemID:          m.ItemID,
		ProductID:       m.ProductID,
		Reason:          m.Reason,
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		TotalLoss:       m.TotalLoss,
		Season:          m.Season,
		DaysInInventory: m.DaysInInventory,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
	}
}

// ledgerError maps ledger sentinels to stable HTTP error codes.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inventory item not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "not enough stock on hand"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "stock record already exists"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return internalError(c, err)
	}
}

// CreateItem godoc
// @Summary      Open a stock record
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryItemRequest  true  "product_id, variant_id, location, reorder_level"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateInventoryItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	product, err := h.catalog.Get(c.Context(), in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
		}
		return ledgerError(c, err)
	}
	item, err := h.uc.CreateItem(c.Context(), ledger.CreateItemInput{
		ProductID:    product.ID,
		VariantID:    in.VariantID,
		Location:     in.Location,
		ReorderLevel: in.ReorderLevel,
		LivingStock:  product.IsLivingStock,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// GetItem godoc
// @Summary      Get a stock record
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// ReceiveStock godoc
// @Summary      Receive stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.ReceiveStockRequest  true  "quantity, optional unit_cost"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id}/receive [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	item, err := h.uc.ReceiveStock(c.Context(), ledger.ReceiveInput{
		ItemID:   c.Params("id"),
		UserID:   GetUserID(c),
		Quantity: in.Quantity,
		UnitCost: in.UnitCost,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// RecordMortality godoc
// @Summary      Record plant mortality
// @Description  Atomically decrements stock, recomputes valuation, marks
// @Description  the lifecycle dead when quantity reaches zero, and writes
// @Description  a mortality log plus a matching OUT movement.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.RecordMortalityRequest  true  "reason, quantity, optional season and notes"
// @Success      201   {object}  dto.MortalityLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id}/mortality [post]
func (h *InventoryHandler) RecordMortality(c *fiber.Ctx) error {
	var in dto.RecordMortalityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	result, err := h.uc.RecordMortality(c.Context(), ledger.MortalityInput{
		ItemID:   c.Params("id"),
		UserID:   GetUserID(c),
		Reason:   in.Reason,
		Quantity: in.Quantity,
		Season:   in.Season,
		Notes:    in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"log":  toMortalityResponse(result.Log),
		"item": toItemResponse(result.Item),
	})
}

// AdjustStock godoc
// @Summary      Adjust stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.AdjustStockRequest  true  "signed quantity, optional reason"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	item, err := h.uc.AdjustStock(c.Context(), ledger.AdjustInput{
		ItemID:   c.Params("id"),
		UserID:   GetUserID(c),
		Quantity: in.Quantity,
		Reason:   in.Reason,
		Notes:    in.Notes,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// ReserveStock godoc
// @Summary      Reserve stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.ReserveStockRequest  true  "quantity"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id}/reserve [post]
func (h *InventoryHandler) ReserveStock(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	item, err := h.uc.ReserveStock(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// ReleaseStock godoc
// @Summary      Release reserved stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.ReserveStockRequest  true  "quantity"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/staff/inventory/items/{id}/release [post]
func (h *InventoryHandler) ReleaseStock(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	item, err := h.uc.ReleaseStock(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// ListMovements godoc
// @Summary      List an item's movement trail
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Item ID"
// @Param        from    query  string  false  "RFC3339 lower bound"
// @Param        to      query  string  false  "RFC3339 upper bound"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementResponse
// @Router       /api/staff/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be RFC3339"})
	}
	limit, offset := pageParams(c)
	movements, err := h.uc.ListMovements(c.Context(), c.Params("id"), from, to, limit, offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// ListMortality godoc
// @Summary      List an item's mortality records
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Item ID"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MortalityLogResponse
// @Router       /api/staff/inventory/items/{id}/mortality [get]
func (h *InventoryHandler) ListMortality(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	logs, err := h.uc.ListMortality(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]*dto.MortalityLogResponse, 0, len(logs))
	for _, m := range logs {
		out = append(out, toMortalityResponse(m))
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      List items at or below their reorder level
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.InventoryItemResponse
// @Router       /api/staff/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	items, err := h.uc.ListLowStock(c.Context(), limit, offset)
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]*dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return c.JSON(out)
}

func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
