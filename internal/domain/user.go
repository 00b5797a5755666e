package domain

import "time"

// UserRole enumerates platform account roles.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleEtudiant   UserRole = "etudiant"
	RoleEntreprise UserRole = "entreprise"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEtudiant, RoleEntreprise:
		return true
	}
	return false
}

// User is the domain model for platform accounts. Admins are the only
// principals allowed through the contact inbox routes.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
