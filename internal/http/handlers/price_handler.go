package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

type PriceHandler struct {
	Prices *services.PriceService
}

// Latest serves the public market price index, newest entries first.
// Reference prices only; final prices are confirmed on inquiry.
func (h *PriceHandler) Latest(c *fiber.Ctx) error {
	out, err := h.Prices.Latest(c.QueryInt("limit", 20))
	if err != nil {
		return fail(c, "prices.latest", err)
	}
	return c.JSON(fiber.Map{"prices": out, "count": len(out)})
}
