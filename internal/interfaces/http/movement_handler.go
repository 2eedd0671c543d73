package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storeroom-api/internal/application/dto"
	"github.com/jhoicas/storeroom-api/internal/application/inventory"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos.
type MovementHandler struct {
	uc *inventory.RecordMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RecordMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary  Asentar un movimiento de almacén
// @Tags     inventory
// @Accept   json
// @Produce  json
// @Param    body  body  dto.RecordMovementRequest  true  "item_name, quantity, kind (RECEIVE|ISSUE), employee_name, supplier_name (RECEIVE), notes"
// @Success  201  {object}  dto.MovementResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse
// @Router   /api/inventory/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordMovement(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordAdjustment asienta una corrección administrativa con delta firmado.
func (h *MovementHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.RecordAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordAdjustment(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
