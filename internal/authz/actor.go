package authz

import "github.com/vendora/marketplace/internal/models"

// Actor is the authenticated caller. It is built once at the HTTP boundary
// from verified token claims and passed into services; services never look
// at raw tokens or request headers.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsSeller() bool {
	return a.Role == models.RoleSeller
}

func (a Actor) IsBuyer() bool {
	return a.Role == models.RoleBuyer
}
