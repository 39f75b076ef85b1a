package services_test

import (
	"errors"
	"testing"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

func TestCatalogSearchIsCaseInsensitive(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	for _, q := range []string{"304", "STAINLESS", "ss-304"} {
		out, err := svc.List(repos.Filter{Search: q})
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, p := range out {
			if p.Slug == "stainless-steel-304-sheet-2mm" {
				found = true
			}
		}
		if !found {
			t.Fatalf("search %q did not match the SS 304 sheet", q)
		}
	}
}

func TestCatalogHidesInactiveProducts(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	_, err := db.Exec(`INSERT INTO products(id,sku,title,slug,metal_type,stock_qty,min_order_qty,active)
		VALUES('p-off','BR-304-OFF','Brass 304 Offcut','brass-304-offcut','brass',10,1,0)`)
	if err != nil {
		t.Fatal(err)
	}

	out, err := svc.List(repos.Filter{Search: "304"})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range out {
		if p.ID == "p-off" {
			t.Fatal("inactive product leaked into the public catalog")
		}
	}

	if _, err := svc.GetBySlug("brass-304-offcut"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not-found for inactive slug, got %v", err)
	}
}

func TestCatalogFilters(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	out, err := svc.List(repos.Filter{MetalType: "copper"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Slug != "copper-rod-12mm" {
		t.Fatalf("metal filter: want the copper rod only, got %d products", len(out))
	}

	out, err = svc.List(repos.Filter{Category: "sheet"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("category filter: want 2 sheets, got %d", len(out))
	}
}

func TestAvailabilityStatuses(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	cases := []struct {
		slug string
		want string
	}{
		{"stainless-steel-304-sheet-2mm", "IN_STOCK"},
		{"aluminium-sheet-1mm-6061", "OUT_OF_STOCK"},
	}
	for _, tc := range cases {
		av, err := svc.Availability(tc.slug)
		if err != nil {
			t.Fatal(err)
		}
		if av.Status != tc.want {
			t.Fatalf("%s: availability = %q, want %q", tc.slug, av.Status, tc.want)
		}
	}

	// Below-MOQ stock is low, not out
	if _, err := db.Exec(`UPDATE products SET stock_qty = 10 WHERE slug = 'copper-rod-12mm'`); err != nil {
		t.Fatal(err)
	}
	av, err := svc.Availability("copper-rod-12mm")
	if err != nil {
		t.Fatal(err)
	}
	if av.Status != "LOW_STOCK" {
		t.Fatalf("availability = %q, want LOW_STOCK", av.Status)
	}
}

func TestCreateProductSlugRules(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	p, err := svc.CreateProduct(services.ProductInput{
		SKU: "GI-WIRE-3", Title: "GI Wire 3mm", MetalType: "galvanized_iron", StockQty: 40, MinOrderQty: 10, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Slug != "gi-wire-3mm" {
		t.Fatalf("slug = %q, want gi-wire-3mm", p.Slug)
	}
	if p.SpecsJSON != "{}" || p.ImagesJSON != "[]" {
		t.Fatalf("empty specs/images not defaulted: %q %q", p.SpecsJSON, p.ImagesJSON)
	}

	// Same title, same slug: conflict
	_, err = svc.CreateProduct(services.ProductInput{
		SKU: "GI-WIRE-3B", Title: "GI Wire 3mm", MetalType: "galvanized_iron", Active: true,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want conflict for duplicate slug, got %v", err)
	}

	_, err = svc.CreateProduct(services.ProductInput{SKU: "X", Title: "!!!", MetalType: "steel"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want validation error for unsluggable title, got %v", err)
	}
}

func TestUpdateProductKeepsSlug(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	got, err := svc.UpdateProduct("prod-cu-rod-12", services.ProductInput{
		SKU: "CU-ROD-12MM", Title: "Copper Rod 12mm ETP", MetalType: "copper",
		Category: "rod", Grade: "C11000", StockQty: 150, MinOrderQty: 25, Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Slug != "copper-rod-12mm" {
		t.Fatalf("slug changed on update: %q", got.Slug)
	}
	if got.Title != "Copper Rod 12mm ETP" || got.StockQty != 150 {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := svc.UpdateProduct("missing", services.ProductInput{SKU: "X", Title: "Y", MetalType: "z"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not-found for missing product, got %v", err)
	}
}
