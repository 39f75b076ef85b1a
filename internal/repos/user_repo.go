package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// NewAccount is everything a registration writes.
type NewAccount struct {
	UserID    string
	Email     string
	Hash      string
	Profile   domain.Profile
	Company   *domain.Company
	Role      string
	SessionID string
}

// CreateAccount writes the user, optional company, profile, role grant and
// session binding in one transaction, so a failed write leaves no trace and
// the email stays free for a retry. A raced duplicate email surfaces as
// ErrConflict.
func (r *UserRepo) CreateAccount(a NewAccount) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO users(id,email,password_hash) VALUES(?,?,?)`,
		a.UserID, a.Email, a.Hash); err != nil {
		if isUniqueViolation(err, "email") {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return err
	}
	if a.Company != nil {
		if _, err := tx.Exec(`
		  INSERT INTO companies(id,name,gst,city,state)
		  VALUES(?,?,NULLIF(?,''),NULLIF(?,''),NULLIF(?,''))
		`, a.Company.ID, a.Company.Name, a.Company.GST, a.Company.City, a.Company.State); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
	  INSERT INTO profiles(user_id,name,phone,company_id)
	  VALUES(?,?,NULLIF(?,''),NULLIF(?,''))
	`, a.UserID, a.Profile.Name, a.Profile.Phone, a.Profile.CompanyID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO user_roles(id,user_id,role)
	  VALUES(?,?,?)
	  ON CONFLICT(user_id,role) DO NOTHING
	`, "role-"+a.UserID+"-"+a.Role, a.UserID, a.Role); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO sessions(id,user_id,last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP
	`, a.SessionID, a.UserID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.password_hash
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

func (r *UserRepo) Profile(userID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `
	  SELECT user_id, name, COALESCE(phone,'') AS phone, COALESCE(company_id,'') AS company_id
	  FROM profiles WHERE user_id=?`, userID)
	return p, err
}
