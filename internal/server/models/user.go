// Package models holds the server-side data model types.
package models

// Role is the access level of an account. Exactly two values exist.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account as stored in the users table. PasswordHash is opaque to
// everything except the credential hasher.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}
