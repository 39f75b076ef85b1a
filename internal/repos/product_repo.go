package repos

import (
	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, sku, title, slug, metal_type,
    COALESCE(category,'') AS category, COALESCE(grade,'') AS grade,
    COALESCE(specs_json,'{}') AS specs_json, COALESCE(images_json,'[]') AS images_json,
    stock_qty, min_order_qty, active,
    created_at, COALESCE(updated_at,'') AS updated_at`

// Filter narrows buyer-facing catalog queries. Empty fields match everything.
type Filter struct {
	MetalType string
	Category  string
	Search    string // substring over title OR sku OR grade, case-insensitive
}

// List returns active products only, newest first, full result set (no cursor).
func (r *ProductRepo) List(f Filter) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if f.MetalType != "" {
		where += ` AND metal_type = ?`
		args = append(args, f.MetalType)
	}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Search != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(grade) LIKE ?)`
		needle := "%" + f.Search + "%"
		args = append(args, needle, needle, needle)
	}

	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY created_at DESC, rowid DESC`, args...)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// GetBySlug resolves an active product; inactive products are hidden, not deleted.
func (r *ProductRepo) GetBySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE slug = ? AND active = 1`, slug)
	return p, err
}

func (r *ProductRepo) SlugExists(slug string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE slug = ?`, slug); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, sku, title, slug, metal_type, category, grade, specs_json, images_json, stock_qty, min_order_qty, active, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.SKU, p.Title, p.Slug, p.MetalType, p.Category, p.Grade, p.SpecsJSON, p.ImagesJSON, p.StockQty, p.MinOrderQty, p.Active)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET sku=?, title=?, metal_type=?, category=?, grade=?, specs_json=?, images_json=?,
	      stock_qty=?, min_order_qty=?, active=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.SKU, p.Title, p.MetalType, p.Category, p.Grade, p.SpecsJSON, p.ImagesJSON,
		p.StockQty, p.MinOrderQty, p.Active, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Counts returns total and active product counts for the admin dashboard.
func (r *ProductRepo) Counts() (total, active int, err error) {
	if err = r.db.Get(&total, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, 0, err
	}
	if err = r.db.Get(&active, `SELECT COUNT(*) FROM products WHERE active = 1`); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// ListAll returns every product including inactive ones (admin view).
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC, rowid DESC`)
	return out, err
}
