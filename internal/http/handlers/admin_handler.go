package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
	"github.com/Talibusmani77/lohakart-inquiry/internal/validate"
)

// AdminHandler serves the back-office. Every route here sits behind
// RequireAdmin.
type AdminHandler struct {
	Inq     *services.InquiryService
	Catalog *services.CatalogService
	Prices  *services.PriceService
	Prods   *repos.ProductRepo
	Inqs    *repos.InquiryRepo
}

// GET /api/v1/admin/inquiries
func (h *AdminHandler) ListInquiries(c *fiber.Ctx) error {
	out, err := h.Inq.ListAll(c.QueryInt("limit", 100))
	if err != nil {
		return fail(c, "admin.inquiries.list", err)
	}
	return c.JSON(fiber.Map{"inquiries": out, "count": len(out)})
}

// GET /api/v1/admin/inquiries/:id
func (h *AdminHandler) InquiryDetail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	u := currentUser(c)
	det, err := h.Inq.Detail(id, u.ID, true)
	if err != nil {
		return fail(c, "admin.inquiries.detail", err)
	}
	return c.JSON(det)
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// PATCH /api/v1/admin/inquiries/:id/status
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Inq.SetStatus(id, req.Status); err != nil {
		return fail(c, "admin.inquiries.status", err)
	}
	applog.Audit(c, "admin.inquiries.status", map[string]any{"inquiry_id": id, "status": req.Status})
	return c.SendStatus(fiber.StatusNoContent)
}

type replyReq struct {
	Message string `json:"message" validate:"required,max=5000"`
}

// POST /api/v1/admin/inquiries/:id/replies
func (h *AdminHandler) PostReply(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req replyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	reply, err := h.Inq.PostReply(id, req.Message)
	if err != nil {
		return fail(c, "admin.inquiries.reply", err)
	}
	applog.Audit(c, "admin.inquiries.reply", map[string]any{"inquiry_id": id, "reply_id": reply.ID})
	return c.Status(fiber.StatusCreated).JSON(reply)
}

type productReq struct {
	SKU         string `json:"sku" validate:"required,max=40"`
	Title       string `json:"title" validate:"required,max=160"`
	MetalType   string `json:"metalType" validate:"required,max=40"`
	Category    string `json:"category" validate:"omitempty,max=40"`
	Grade       string `json:"grade" validate:"omitempty,max=40"`
	Specs       string `json:"specs" validate:"omitempty,max=4000"`
	Images      string `json:"images" validate:"omitempty,max=4000"`
	StockQty    int    `json:"stockQty" validate:"gte=0"`
	MinOrderQty int    `json:"minOrderQty" validate:"gte=1"`
	Active      bool   `json:"active"`
}

func (r productReq) toInput() services.ProductInput {
	return services.ProductInput{
		SKU:         r.SKU,
		Title:       r.Title,
		MetalType:   r.MetalType,
		Category:    r.Category,
		Grade:       r.Grade,
		SpecsJSON:   r.Specs,
		ImagesJSON:  r.Images,
		StockQty:    r.StockQty,
		MinOrderQty: r.MinOrderQty,
		Active:      r.Active,
	}
}

// GET /api/v1/admin/products
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.Catalog.ListAll()
	if err != nil {
		return fail(c, "admin.products.list", err)
	}
	return c.JSON(fiber.Map{"products": out, "count": len(out)})
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "admin.product"})
		return badRequest(c, "sku, title and metal type are required")
	}
	p, err := h.Catalog.CreateProduct(req.toInput())
	if err != nil {
		return fail(c, "admin.products.create", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "slug": p.Slug})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /api/v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "sku, title and metal type are required")
	}
	p, err := h.Catalog.UpdateProduct(id, req.toInput())
	if err != nil {
		return fail(c, "admin.products.update", err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

type priceReq struct {
	Metal    string `json:"metal" validate:"required,max=40"`
	Price    string `json:"price" validate:"required,max=20"`
	Unit     string `json:"unit" validate:"omitempty,max=10"`
	Currency string `json:"currency" validate:"omitempty,max=5"`
	Source   string `json:"source" validate:"omitempty,max=120"`
}

// POST /api/v1/admin/prices
func (h *AdminHandler) RecordPrice(c *fiber.Ctx) error {
	var req priceReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "metal and price are required")
	}
	p, err := h.Prices.Record(req.Metal, req.Price, req.Unit, req.Currency, req.Source)
	if err != nil {
		return fail(c, "admin.prices.record", err)
	}
	applog.Audit(c, "admin.prices.record", map[string]any{"metal": p.Metal, "price": p.PricePerUnit})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	total, active, err := h.Prods.Counts()
	if err != nil {
		return fail(c, "admin.stats", err)
	}
	byStatus, err := h.Inqs.CountByStatus()
	if err != nil {
		return fail(c, "admin.stats", err)
	}
	inquiries := 0
	for _, n := range byStatus {
		inquiries += n
	}
	return c.JSON(fiber.Map{
		"products":          total,
		"activeProducts":    active,
		"inquiries":         inquiries,
		"inquiriesByStatus": byStatus,
	})
}
