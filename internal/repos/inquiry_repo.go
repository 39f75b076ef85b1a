package repos

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
)

type InquiryRepo struct{ db *sqlx.DB }

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo { return &InquiryRepo{db: db} }

const inquiryCols = `
    id, number, buyer_id, COALESCE(company_id,'') AS company_id,
    COALESCE(delivery_address,'') AS delivery_address,
    COALESCE(delivery_city,'') AS delivery_city,
    COALESCE(delivery_state,'') AS delivery_state,
    COALESCE(delivery_pin,'') AS delivery_pin,
    COALESCE(notes,'') AS notes,
    status, created_at, COALESCE(updated_at,'') AS updated_at`

// NewItem is one line to persist alongside a new inquiry.
type NewItem struct {
	ID        string
	ProductID string
	Qty       int
	UOM       string
	Note      string
}

// Create inserts the inquiry header and all line items in one transaction.
// The human-readable number is generated inside the same transaction so a
// failed insert never burns a sequence slot. Two concurrent submissions can
// race to the same number; the loser hits the UNIQUE constraint and retries
// with a fresh one.
func (r *InquiryRepo) Create(inq domain.Inquiry, items []NewItem) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		number, err := r.create(inq, items)
		if err == nil {
			return number, nil
		}
		if !isUniqueViolation(err, "inquiries.number") {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

func (r *InquiryRepo) create(inq domain.Inquiry, items []NewItem) (string, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	number, err := nextInquiryNumber(tx)
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(`
	  INSERT INTO inquiries(id, number, buyer_id, company_id, delivery_address, delivery_city, delivery_state, delivery_pin, notes, status, created_at)
	  VALUES(?, ?, ?, NULLIF(?,''), ?, ?, ?, ?, ?, 'open', CURRENT_TIMESTAMP)
	`, inq.ID, number, inq.BuyerID, inq.CompanyID, inq.DeliveryAddress, inq.DeliveryCity, inq.DeliveryState, inq.DeliveryPin, inq.Notes); err != nil {
		return "", err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO inquiry_items(id, inquiry_id, product_id, qty, uom, note)
		  VALUES(?, ?, ?, ?, ?, NULLIF(?,''))
		`, it.ID, inq.ID, it.ProductID, it.Qty, it.UOM, it.Note); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return number, nil
}

// nextInquiryNumber yields INQ-<year>-<seq>, restarting the sequence each
// year. Seq continues from the highest number seen, so pre-existing rows
// (restores, imports) are never reassigned.
func nextInquiryNumber(tx *sqlx.Tx) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("INQ-%d-", year)
	var seq int
	if err := tx.Get(&seq, `
	  SELECT COALESCE(MAX(CAST(SUBSTR(number, ?) AS INTEGER)), 0)
	  FROM inquiries WHERE number LIKE ?
	`, len(prefix)+1, prefix+"%"); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

func (r *InquiryRepo) Get(id string) (domain.Inquiry, error) {
	var inq domain.Inquiry
	err := r.db.Get(&inq, `SELECT `+inquiryCols+` FROM inquiries WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return domain.Inquiry{}, domain.ErrNotFound
	}
	return inq, err
}

// ItemRow is an inquiry line joined with its product for detail views.
type ItemRow struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Title     string `db:"title" json:"title"`
	SKU       string `db:"sku" json:"sku"`
	MetalType string `db:"metal_type" json:"metalType"`
	Qty       int    `db:"qty" json:"qty"`
	UOM       string `db:"uom" json:"uom"`
	Note      string `db:"note" json:"note,omitempty"`
}

func (r *InquiryRepo) Items(inquiryID string) ([]ItemRow, error) {
	items := []ItemRow{}
	err := r.db.Select(&items, `
	  SELECT ii.id, ii.product_id, p.title, p.sku, p.metal_type,
	         ii.qty, COALESCE(ii.uom,'') AS uom, COALESCE(ii.note,'') AS note
	  FROM inquiry_items ii JOIN products p ON p.id = ii.product_id
	  WHERE ii.inquiry_id = ?
	  ORDER BY ii.rowid
	`, inquiryID)
	return items, err
}

// Summary is an inquiry header with its line count for list views.
type Summary struct {
	ID        string `db:"id" json:"id"`
	Number    string `db:"number" json:"number"`
	BuyerID   string `db:"buyer_id" json:"buyerId"`
	BuyerName string `db:"buyer_name" json:"buyerName"`
	Status    string `db:"status" json:"status"`
	ItemCount int    `db:"item_count" json:"itemCount"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// ListByBuyer returns the buyer's own inquiries, newest first.
func (r *InquiryRepo) ListByBuyer(buyerID string) ([]Summary, error) {
	out := []Summary{}
	err := r.db.Select(&out, `
	  SELECT i.id, i.number, i.buyer_id, COALESCE(pr.name,'') AS buyer_name, i.status,
	         (SELECT COUNT(*) FROM inquiry_items ii WHERE ii.inquiry_id = i.id) AS item_count,
	         i.created_at
	  FROM inquiries i LEFT JOIN profiles pr ON pr.user_id = i.buyer_id
	  WHERE i.buyer_id = ?
	  ORDER BY datetime(i.created_at) DESC, i.rowid DESC
	`, buyerID)
	return out, err
}

// ListAll returns every inquiry for the admin back-office, newest first.
func (r *InquiryRepo) ListAll(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []Summary{}
	err := r.db.Select(&out, `
	  SELECT i.id, i.number, i.buyer_id, COALESCE(pr.name,'') AS buyer_name, i.status,
	         (SELECT COUNT(*) FROM inquiry_items ii WHERE ii.inquiry_id = i.id) AS item_count,
	         i.created_at
	  FROM inquiries i LEFT JOIN profiles pr ON pr.user_id = i.buyer_id
	  ORDER BY datetime(i.created_at) DESC, i.rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus overwrites the stored status and touches updated_at.
// Last write wins; no transition guard and no status history.
func (r *InquiryRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE inquiries SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus feeds the admin dashboard.
func (r *InquiryRepo) CountByStatus() (map[string]int, error) {
	rows := []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}{}
	if err := r.db.Select(&rows, `SELECT status, COUNT(*) AS n FROM inquiries GROUP BY status`); err != nil {
		return nil, err
	}
	out := map[string]int{}
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
