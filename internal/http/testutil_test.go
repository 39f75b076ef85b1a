package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"github.com/Talibusmani77/lohakart-inquiry/internal/config"
	"github.com/Talibusmani77/lohakart-inquiry/internal/http/handlers"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

// Seeded session ids bound to the demo users.
const (
	sidBuyer  = "sid-buyer"
	sidBuyer2 = "sid-buyer2"
	sidAdmin  = "sid-admin"
)

// newTestApp wires the API against a seeded in-memory database, with the
// demo sessions already logged in. Route table mirrors cmd/lohakart.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)

	userRepo := repos.NewUserRepo(db)
	for sid, uid := range map[string]string{
		sidBuyer:  "u-ravi",
		sidBuyer2: "u-meera",
		sidAdmin:  "u-admin",
	} {
		if err := userRepo.BindSession(sid, uid); err != nil {
			t.Fatal(err)
		}
	}

	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db, config.Config{}, authSvc)

	app := fiber.New()
	app.Use(requestid.New())

	api := app.Group("/api/v1")

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)
	api.Get("/products/:slug/availability", deps.ProductHandler.Availability)
	api.Get("/prices", deps.PriceHandler.Latest)

	auth := api.Group("/auth")
	auth.Post("/register", authH.Register)
	auth.Post("/login", authH.Login)
	auth.Post("/logout", authH.Logout)
	auth.Get("/me", authH.Me)

	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Patch("/cart/items/:productId", deps.CartHandler.Update)
	api.Delete("/cart/items/:productId", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)

	buyer := api.Group("/inquiries", handlers.RequireUser(authSvc))
	buyer.Post("/", deps.InquiryHandler.Submit)
	buyer.Get("/", deps.InquiryHandler.ListMine)
	buyer.Get("/:id", deps.InquiryHandler.Detail)
	buyer.Get("/:id/replies", deps.InquiryHandler.Replies)

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

	return app, db
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatal(err)
	}
}
