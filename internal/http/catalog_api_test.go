package handlers_test

import (
	"net/http"
	"testing"
)

func TestCatalogEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	var list struct {
		Products []struct {
			Slug      string `json:"slug"`
			MetalType string `json:"metalType"`
		} `json:"products"`
		Count int `json:"count"`
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("catalog list: got %d, want 200", resp.StatusCode)
	}
	decodeBody(t, resp, &list)
	if list.Count != 4 {
		t.Fatalf("seeded catalog: want 4 products, got %d", list.Count)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?search=304&metalType=stainless_steel", "", nil)
	decodeBody(t, resp, &list)
	if list.Count != 1 || list.Products[0].Slug != "stainless-steel-304-sheet-2mm" {
		t.Fatalf("filtered search: %+v", list)
	}

	// Hostile search input is rejected, not passed to the query
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?search=%25%27%3B--", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("hostile search: got %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/copper-rod-12mm", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("product detail: got %d, want 200", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/no-such-product", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing product detail: got %d, want 404", resp.StatusCode)
	}

	var avail struct {
		Status string `json:"status"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/aluminium-sheet-1mm-6061/availability", "", nil)
	decodeBody(t, resp, &avail)
	if avail.Status != "OUT_OF_STOCK" {
		t.Fatalf("availability = %q, want OUT_OF_STOCK", avail.Status)
	}
}

func TestPriceEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	var list struct {
		Prices []struct {
			Metal        string `json:"metal"`
			PricePerUnit string `json:"pricePerUnit"`
		} `json:"prices"`
		Count int `json:"count"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/v1/prices", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("prices: got %d, want 200", resp.StatusCode)
	}
	decodeBody(t, resp, &list)
	if list.Count != 4 {
		t.Fatalf("seeded price index: want 4 points, got %d", list.Count)
	}

	// Admin records a new point; it shows up first
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/prices", sidAdmin, map[string]any{
		"metal": "zinc", "price": "268.40", "source": "MCX close",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record price: got %d, want 201", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/prices?limit=2", "", nil)
	decodeBody(t, resp, &list)
	if list.Count != 2 || list.Prices[0].Metal != "zinc" {
		t.Fatalf("latest prices: %+v", list)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/prices", sidAdmin, map[string]any{
		"metal": "zinc", "price": "-4",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("negative price: got %d, want 400", resp.StatusCode)
	}
}

func TestAdminProductLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	var created struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/products", sidAdmin, map[string]any{
		"sku": "GI-WIRE-3", "title": "GI Wire 3mm", "metalType": "galvanized_iron",
		"category": "wire", "stockQty": 40, "minOrderQty": 10, "active": true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: got %d, want 201", resp.StatusCode)
	}
	decodeBody(t, resp, &created)
	if created.Slug != "gi-wire-3mm" {
		t.Fatalf("created slug = %q", created.Slug)
	}

	// Duplicate title collides on slug
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/products", sidAdmin, map[string]any{
		"sku": "GI-WIRE-3B", "title": "GI Wire 3mm", "metalType": "galvanized_iron", "minOrderQty": 1,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate slug: got %d, want 409", resp.StatusCode)
	}

	// Deactivation hides it from the public catalog but not from admin
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/admin/products/"+created.ID, sidAdmin, map[string]any{
		"sku": "GI-WIRE-3", "title": "GI Wire 3mm", "metalType": "galvanized_iron",
		"category": "wire", "stockQty": 40, "minOrderQty": 10, "active": false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update product: got %d, want 200", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/gi-wire-3mm", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deactivated product still public: got %d", resp.StatusCode)
	}

	var all struct {
		Count int `json:"count"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/products", sidAdmin, nil)
	decodeBody(t, resp, &all)
	if all.Count != 5 {
		t.Fatalf("admin product list: want 5, got %d", all.Count)
	}
}
