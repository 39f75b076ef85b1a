package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
	"github.com/Talibusmani77/lohakart-inquiry/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addLineReq struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Qty       int    `json:"qty" validate:"gte=1"`
	UOM       string `json:"uom" validate:"omitempty,max=10"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req addLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "cart.add"})
		return badRequest(c, "invalid cart line")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return badRequest(c, "invalid productId")
	}

	if err := h.Cart.Add(sid, req.ProductID, req.Qty, req.UOM, req.Note); err != nil {
		return fail(c, "cart.add", err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cv)
}

type updateLineReq struct {
	Qty int `json:"qty" validate:"gte=1"`
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid productId")
	}
	var req updateLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "quantity must be at least 1")
	}
	if err := h.Cart.Update(sid, productID, req.Qty); err != nil {
		return fail(c, "cart.update", err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "invalid productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		return fail(c, "cart.remove", err)
	}
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		return fail(c, "cart.clear", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cv)
}
