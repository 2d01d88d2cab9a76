package service

import (
	"github.com/iudanet/starmap/internal/models"
	"github.com/iudanet/starmap/internal/server/audit"
)

// Caller is the authenticated principal performing an operation
type Caller struct {
	UserID   string
	Username string
	Role     models.Role
	IP       string
}

// CLICaller principal for maintenance commands run on the host
var CLICaller = Caller{
	Username: audit.CLIActor.Username,
	Role:     models.RoleAdmin,
	IP:       audit.CLIActor.IP,
}

// IsAdmin reports whether the caller holds the admin role
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Actor returns the audit identity of the caller
func (c Caller) Actor() audit.Actor {
	return audit.Actor{
		UserID:   c.UserID,
		Username: c.Username,
		IP:       c.IP,
	}
}

func requireAdmin(c Caller) error {
	if !c.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
