package repos

import (
	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/jmoiron/sqlx"
)

type PriceRepo struct{ db *sqlx.DB }

func NewPriceRepo(db *sqlx.DB) *PriceRepo { return &PriceRepo{db: db} }

// Latest returns the newest price points first, capped at limit.
func (r *PriceRepo) Latest(limit int) ([]domain.PricePoint, error) {
	if limit <= 0 {
		limit = 20
	}
	out := []domain.PricePoint{}
	err := r.db.Select(&out, `
	  SELECT id, metal, price_per_unit, unit, currency, COALESCE(source,'') AS source, timestamp
	  FROM price_index
	  ORDER BY datetime(timestamp) DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *PriceRepo) Insert(p domain.PricePoint) error {
	_, err := r.db.Exec(`
	  INSERT INTO price_index(id, metal, price_per_unit, unit, currency, source, timestamp)
	  VALUES(?, ?, ?, ?, ?, NULLIF(?,''), CURRENT_TIMESTAMP)
	`, p.ID, p.Metal, p.PricePerUnit, p.Unit, p.Currency, p.Source)
	return err
}
