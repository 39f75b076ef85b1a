package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
	"github.com/Talibusmani77/lohakart-inquiry/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Name     string `json:"name" validate:"required,max=80"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Company  string `json:"company" validate:"omitempty,max=120"`
	GST      string `json:"gst" validate:"omitempty,max=20"`
	City     string `json:"city" validate:"omitempty,max=80"`
	State    string `json:"state" validate:"omitempty,max=80"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"reason": "bad_input"})
		return badRequest(c, "email, password and name are required")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password must be 8-64 chars with upper, lower, digit and symbol")
	}

	u, err := h.Auth.Register(sid, services.RegisterInput{
		Email: req.Email, Password: req.Password, Name: req.Name, Phone: req.Phone,
		Company: req.Company, GST: req.GST, City: req.City, State: req.State,
	})
	if err != nil {
		if err == services.ErrEmailTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
		}
		return fail(c, "auth.register", err)
	}
	applog.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": u.ID, "email": u.Email})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=64"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"id": u.ID, "email": u.Email})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me reports the current session identity, or 401 when anonymous.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	return c.JSON(fiber.Map{"id": u.ID, "email": u.Email})
}
