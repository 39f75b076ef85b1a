package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Talibusmani77/lohakart-inquiry/internal/config"
	"github.com/Talibusmani77/lohakart-inquiry/internal/http/handlers"
	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a friendly message; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origin,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PATCH,DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)

	api := app.Group("/api/v1")

	// Public catalog & price index
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)
	api.Get("/products/:slug/availability", deps.ProductHandler.Availability)
	api.Get("/prices", deps.PriceHandler.Latest)

	// Auth (login throttled)
	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, please try again later"})
		},
	}), authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me", authH.Me)

	// Inquiry cart (anonymous sessions allowed; submission requires login)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Patch("/cart/items/:productId", deps.CartHandler.Update)
	api.Delete("/cart/items/:productId", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)

	// Buyer dashboard
	buyer := api.Group("/inquiries", handlers.RequireUser(authSvc))
	buyer.Post("/", deps.InquiryHandler.Submit)
	buyer.Get("/", deps.InquiryHandler.ListMine)
	buyer.Get("/:id", deps.InquiryHandler.Detail)
	buyer.Get("/:id/replies", deps.InquiryHandler.Replies)

	// Admin back-office
	admin := api.Group("/admin", handlers.RequireAdmin(authSvc, deps.Gate))
	admin.Get("/inquiries", deps.AdminHandler.ListInquiries)
	admin.Get("/inquiries/:id", deps.AdminHandler.InquiryDetail)
	admin.Patch("/inquiries/:id/status", deps.AdminHandler.UpdateStatus)
	admin.Post("/inquiries/:id/replies", deps.AdminHandler.PostReply)
	admin.Get("/products", deps.AdminHandler.ListProducts)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Patch("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Post("/prices", deps.AdminHandler.RecordPrice)
	admin.Get("/stats", deps.AdminHandler.Stats)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
