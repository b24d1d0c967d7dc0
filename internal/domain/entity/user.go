package entity

import "time"

// User representa un miembro del equipo con acceso al CRM.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Phone        string
	Department   string
	Designation  string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}
