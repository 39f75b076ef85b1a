package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
	"github.com/Talibusmani77/lohakart-inquiry/internal/validate"
)

type InquiryHandler struct {
	Inq  *services.InquiryService
	Gate *services.RoleGate
}

type submitReq struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required,max=300"`
	DeliveryCity    string `json:"deliveryCity" validate:"required,max=80"`
	DeliveryState   string `json:"deliveryState" validate:"required,max=80"`
	DeliveryPin     string `json:"deliveryPin" validate:"required"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// Submit converts the session cart into a persisted inquiry. Routed behind
// RequireUser, so a buyer identity is guaranteed here.
func (h *InquiryHandler) Submit(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u := currentUser(c)

	var req submitReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "inquiry.submit"})
		return badRequest(c, "delivery address, city, state and PIN are required")
	}
	pin, ok := validate.PIN(req.DeliveryPin)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "deliveryPin"})
		return badRequest(c, "enter a valid 6-digit PIN code")
	}

	inq, err := h.Inq.Submit(sid, u.ID, services.SubmitInput{
		DeliveryAddress: req.DeliveryAddress,
		DeliveryCity:    req.DeliveryCity,
		DeliveryState:   req.DeliveryState,
		DeliveryPin:     pin,
		Notes:           req.Notes,
	})
	if err != nil {
		return fail(c, "inquiry.submit", err)
	}
	applog.Audit(c, "inquiry.submit", map[string]any{"inquiry_id": inq.ID, "number": inq.Number})
	return c.Status(fiber.StatusCreated).JSON(inq)
}

// ListMine returns the buyer's own inquiries, newest first.
func (h *InquiryHandler) ListMine(c *fiber.Ctx) error {
	u := currentUser(c)
	out, err := h.Inq.ListForBuyer(u.ID)
	if err != nil {
		return fail(c, "inquiry.list", err)
	}
	return c.JSON(fiber.Map{"inquiries": out, "count": len(out)})
}

// Detail is visible to the inquiry's buyer and to admins.
func (h *InquiryHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	u := currentUser(c)
	det, err := h.Inq.Detail(id, u.ID, h.Gate.IsAdmin(u.ID))
	if err != nil {
		return fail(c, "inquiry.detail", err)
	}
	return c.JSON(det)
}

// Replies returns the append-only thread, oldest first. Same visibility rule
// as Detail.
func (h *InquiryHandler) Replies(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	u := currentUser(c)
	det, err := h.Inq.Detail(id, u.ID, h.Gate.IsAdmin(u.ID))
	if err != nil {
		return fail(c, "inquiry.replies", err)
	}
	return c.JSON(fiber.Map{"replies": det.Replies, "count": len(det.Replies)})
}
