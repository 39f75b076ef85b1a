package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Hash  string `db:"password_hash"`
}

// RoleGrant associates a user with a capability from the closed {user, admin} set.
// Read-only from the application's perspective: checked, never written, at runtime.
type RoleGrant struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
}
