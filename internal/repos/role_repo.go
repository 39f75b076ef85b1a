package repos

import "github.com/jmoiron/sqlx"

// RoleRepo reads role grants. The application only ever checks grants; it
// never writes them outside of seeding.
type RoleRepo struct{ db *sqlx.DB }

func NewRoleRepo(db *sqlx.DB) *RoleRepo { return &RoleRepo{db: db} }

// HasRole mirrors the has_role(user_id, role) lookup: no grant means false.
func (r *RoleRepo) HasRole(userID, role string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role = ?`, userID, role); err != nil {
		return false, err
	}
	return n > 0, nil
}
