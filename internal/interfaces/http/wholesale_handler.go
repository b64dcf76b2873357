package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhollow/nursery-api/internal/application/auth"
	"github.com/greenhollow/nursery-api/internal/application/dto"
	"github.com/greenhollow/nursery-api/internal/application/wholesale"
	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
)

// WholesaleHandler handles the wholesale account workflow: the
// self-service application and the staff decision endpoint.
type WholesaleHandler struct {
	uc     *wholesale.UseCase
	authUC *auth.UseCase
}

// NewWholesaleHandler constructs the handler.
func NewWholesaleHandler(uc *wholesale.UseCase, authUC *auth.UseCase) *WholesaleHandler {
	return &WholesaleHandler{uc: uc, authUC: authUC}
}

func toAccountResponse(u *entity.User) fiber.Map {
	return fiber.Map{
		"id":               u.ID,
		"email":            u.Email,
		"role":             u.Role,
		"wholesale_status": u.WholesaleStatus,
		"business_name":    u.BusinessName,
	}
}

// Me godoc
// @Summary      Current account
// @Tags         account
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/account/me [get]
func (h *WholesaleHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
	}
	out, err := h.authUC.Me(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "account not found"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Apply for a wholesale account
// @Description  Moves the caller's wholesale status to application_pending.
// @Description  Allowed from not_applied and rejected only.
// @Tags         account
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WholesaleApplyRequest  true  "business_name"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/account/apply-wholesale [post]
func (h *WholesaleHandler) Apply(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
	}
	var in dto.WholesaleApplyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	user, err := h.uc.Apply(c.Context(), userID, in.BusinessName)
	if err != nil {
		return wholesaleError(c, err)
	}
	return c.JSON(toAccountResponse(user))
}

// Act godoc
// @Summary      Decide on a wholesale account
// @Description  approve, reject, suspend, reactivate or cancel. The action
// @Description  must be valid for the account's current status.
// @Tags         wholesale
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Account ID"
// @Param        body  body  dto.WholesaleActionRequest  true  "action"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/staff/wholesale/accounts/{id}/action [post]
func (h *WholesaleHandler) Act(c *fiber.Ctx) error {
	var in dto.WholesaleActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	user, err := h.uc.Act(c.Context(), GetRole(c), c.Params("id"), in.Action)
	if err != nil {
		return wholesaleError(c, err)
	}
	return c.JSON(toAccountResponse(user))
}

// wholesaleError maps workflow sentinels. A state/action mismatch is a
// user-facing 422, never a 500.
func wholesaleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "action not allowed for the current wholesale status"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "account not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "wholesale management permission required"})
	default:
		return internalError(c, err)
	}
}
