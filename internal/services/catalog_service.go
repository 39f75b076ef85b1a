package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List returns active products matching the filters, newest first. The whole
// result set is returned per call; the catalog is assumed small.
func (s *CatalogService) List(f repos.Filter) ([]domain.Product, error) {
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))
	return s.Prods.List(f)
}

func (s *CatalogService) GetBySlug(slug string) (domain.Product, error) {
	p, err := s.Prods.GetBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, slug)
		}
		return domain.Product{}, err
	}
	return p, nil
}

// Availability derives a coarse stock status relative to the product's
// minimum order quantity.
func (s *CatalogService) Availability(slug string) (domain.Availability, error) {
	p, err := s.GetBySlug(slug)
	if err != nil {
		return domain.Availability{}, err
	}
	status := "IN_STOCK"
	switch {
	case p.StockQty <= 0:
		status = "OUT_OF_STOCK"
	case p.StockQty < p.MinOrderQty:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.StockQty}, nil
}

type ProductInput struct {
	SKU         string
	Title       string
	MetalType   string
	Category    string
	Grade       string
	SpecsJSON   string
	ImagesJSON  string
	StockQty    int
	MinOrderQty int
	Active      bool
}

// CreateProduct derives a URL-safe slug from the title. A slug collision is a
// conflict, not silently deduplicated: distinct products need distinct titles.
func (s *CatalogService) CreateProduct(in ProductInput) (domain.Product, error) {
	sl := slug.Make(in.Title)
	if sl == "" {
		return domain.Product{}, fmt.Errorf("%w: title must contain at least one word", domain.ErrValidation)
	}
	exists, err := s.Prods.SlugExists(sl)
	if err != nil {
		return domain.Product{}, err
	}
	if exists {
		return domain.Product{}, fmt.Errorf("%w: a product with slug %q already exists", domain.ErrConflict, sl)
	}
	if in.MinOrderQty < 1 {
		in.MinOrderQty = 1
	}
	if in.SpecsJSON == "" {
		in.SpecsJSON = "{}"
	}
	if in.ImagesJSON == "" {
		in.ImagesJSON = "[]"
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		SKU:         strings.TrimSpace(in.SKU),
		Title:       strings.TrimSpace(in.Title),
		Slug:        sl,
		MetalType:   in.MetalType,
		Category:    in.Category,
		Grade:       in.Grade,
		SpecsJSON:   in.SpecsJSON,
		ImagesJSON:  in.ImagesJSON,
		StockQty:    in.StockQty,
		MinOrderQty: in.MinOrderQty,
		Active:      in.Active,
	}
	if err := s.Prods.Insert(p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(p.ID)
}

// UpdateProduct rewrites the mutable fields. The slug stays fixed after
// creation so catalog links never break.
func (s *CatalogService) UpdateProduct(id string, in ProductInput) (domain.Product, error) {
	existing, err := s.Prods.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
		}
		return domain.Product{}, err
	}
	if in.MinOrderQty < 1 {
		in.MinOrderQty = 1
	}
	existing.SKU = strings.TrimSpace(in.SKU)
	existing.Title = strings.TrimSpace(in.Title)
	existing.MetalType = in.MetalType
	existing.Category = in.Category
	existing.Grade = in.Grade
	if in.SpecsJSON != "" {
		existing.SpecsJSON = in.SpecsJSON
	}
	if in.ImagesJSON != "" {
		existing.ImagesJSON = in.ImagesJSON
	}
	existing.StockQty = in.StockQty
	existing.MinOrderQty = in.MinOrderQty
	existing.Active = in.Active
	if err := s.Prods.Update(existing); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) ListAll() ([]domain.Product, error) {
	return s.Prods.ListAll()
}
