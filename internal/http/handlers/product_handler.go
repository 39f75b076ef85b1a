package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
	"github.com/Talibusmani77/lohakart-inquiry/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List serves the buyer-facing catalog with optional metal/category filters
// and a free-text search over title, sku and grade.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.Filter{
		MetalType: strings.TrimSpace(c.Query("metalType")),
		Category:  strings.TrimSpace(c.Query("category")),
	}
	if rawQ := c.Query("search"); strings.TrimSpace(rawQ) != "" {
		q, ok := validate.Q(rawQ)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "search", "value": rawQ})
			return badRequest(c, "enter a valid keyword (letters/numbers only)")
		}
		f.Search = q
	}
	if f.MetalType != "" {
		if _, ok := validate.ID(f.MetalType); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "metalType"})
			return badRequest(c, "invalid metal type filter")
		}
	}
	if f.Category != "" {
		if _, ok := validate.ID(f.Category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return badRequest(c, "invalid category filter")
		}
	}

	products, err := h.Catalog.List(f)
	if err != nil {
		return fail(c, "catalog.list", err)
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	sl, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	p, err := h.Catalog.GetBySlug(sl)
	if err != nil {
		return fail(c, "catalog.detail", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	sl, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	avail, err := h.Catalog.Availability(sl)
	if err != nil {
		return fail(c, "catalog.availability", err)
	}
	return c.JSON(avail)
}
