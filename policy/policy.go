// Package policy holds the role and ownership checks shared by every
// mutating operation.
package policy

import (
	"errors"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
)

// ErrNotOwner is the cause of every ownership denial.
var ErrNotOwner = errors.New("caller does not own the resource")

// Owners is the role set allowed to manage restaurants and their menus.
var Owners = []models.UserRole{models.RoleRestaurant, models.RoleAdmin}

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID string
	Role   models.UserRole
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// RequireRole allows the caller when their role is one of roles.
func RequireRole(c Caller, roles ...models.UserRole) error {
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return apperr.New(apperr.Forbidden, "Insufficient permissions. Required role(s): "+rolesString(roles))
}

// RequireOwnerOrAdmin allows the caller when they own the resource or are an admin.
func RequireOwnerOrAdmin(c Caller, ownerID string, msg string) error {
	if c.IsAdmin() || (ownerID != "" && c.UserID == ownerID) {
		return nil
	}
	if msg == "" {
		msg = "Access denied. You can only access your own resources"
	}
	return apperr.Wrap(apperr.Forbidden, msg, ErrNotOwner)
}

// Authorize applies the role gate and then the ownership gate.
func Authorize(c Caller, ownerID string, roles ...models.UserRole) error {
	if len(roles) > 0 {
		if err := RequireRole(c, roles...); err != nil {
			return err
		}
	}
	return RequireOwnerOrAdmin(c, ownerID, "")
}

// Reword replaces the message of an ownership denial. Other errors pass
// through unchanged.
func Reword(err error, msg string) error {
	if errors.Is(err, ErrNotOwner) {
		return apperr.Wrap(apperr.Forbidden, msg, ErrNotOwner)
	}
	return err
}

func rolesString(roles []models.UserRole) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}
