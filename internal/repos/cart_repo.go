package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// CartRepo persists the per-session inquiry cart. One cart per browser
// session; lines keyed by product id, insertion order preserved.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartLine struct {
	ProductID string `db:"product_id" json:"productId"`
	Title     string `db:"title" json:"title"`
	SKU       string `db:"sku" json:"sku"`
	Qty       int    `db:"qty" json:"qty"`
	UOM       string `db:"uom" json:"uom"`
	Note      string `db:"note" json:"note,omitempty"`
	ImageJSON string `db:"images_json" json:"-"`
}

func (r *CartRepo) Ensure(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	if _, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339)); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Add merges quantity into an existing line for the same product, otherwise
// appends a new line.
func (r *CartRepo) Add(cartID, productID string, qty int, uom, note string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,uom,note,created_at)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, uom, note)
	return err
}

// Update replaces the quantity for a matching line. Missing lines are a no-op.
func (r *CartRepo) Update(cartID, productID string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	return err
}

func (r *CartRepo) Remove(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// Snapshot returns the cart lines joined with product title/sku, in the order
// they were first added.
func (r *CartRepo) Snapshot(cartID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.product_id, p.title, p.sku, ci.qty, ci.uom,
	         COALESCE(ci.note,'') AS note, COALESCE(p.images_json,'[]') AS images_json
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.rowid
	`, cartID)
	return lines, err
}
