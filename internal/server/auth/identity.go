// Package auth implements the security primitives of the server: password
// hashing, the session token codec, and the Identity type they exchange.
package auth

import (
	"github.com/avolkov/tourneyadmin/internal/server/models"
)

// Identity is the authenticated subject of a request.
type Identity struct {
	Name string
	Role models.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}
