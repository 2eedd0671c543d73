package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/storeroom-api/internal/application/analytics"
)

// DashboardHandler maneja las consultas agregadas del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary devuelve las tarjetas del tablero para el día en curso.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activity devuelve los últimos movimientos. ?limit= acotado por el caso de uso.
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	out, err := h.uc.RecentActivity(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories devuelve la distribución de existencias por categoría.
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryBreakdown(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
