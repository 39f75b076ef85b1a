package repos

import (
	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ReplyRepo is the append-only reply thread under an inquiry. No update, no
// delete.
type ReplyRepo struct{ db *sqlx.DB }

func NewReplyRepo(db *sqlx.DB) *ReplyRepo { return &ReplyRepo{db: db} }

func (r *ReplyRepo) Append(id, inquiryID, message string) error {
	_, err := r.db.Exec(`
	  INSERT INTO inquiry_replies(id, inquiry_id, message, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, id, inquiryID, message)
	return err
}

// List returns replies oldest first.
func (r *ReplyRepo) List(inquiryID string) ([]domain.InquiryReply, error) {
	out := []domain.InquiryReply{}
	err := r.db.Select(&out, `
	  SELECT id, inquiry_id, message, created_at
	  FROM inquiry_replies
	  WHERE inquiry_id = ?
	  ORDER BY datetime(created_at) ASC, rowid ASC
	`, inquiryID)
	return out, err
}
