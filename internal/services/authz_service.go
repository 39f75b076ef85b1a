package services

import (
	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

// RoleGate is the single admin-capability check for the whole service. The
// original design carried two parallel admin-auth mechanisms; only the
// session + role-grant path survives here.
type RoleGate struct {
	Roles *repos.RoleRepo
}

func NewRoleGate(roles *repos.RoleRepo) *RoleGate { return &RoleGate{Roles: roles} }

// IsAdmin resolves the identity's role grant. No grant, or any lookup
// failure, resolves to false: the gate fails closed.
func (g *RoleGate) IsAdmin(userID string) bool {
	if userID == "" {
		return false
	}
	ok, err := g.Roles.HasRole(userID, domain.RoleAdmin)
	if err != nil {
		return false
	}
	return ok
}
