// Package session define la identidad del usuario autenticado que se pasa a los casos de uso.
package session

import "github.com/jhoicas/crm-api/internal/domain/entity"

// Session usuario autenticado de la petición actual. Lo construye el middleware
// de autenticación desde el JWT y se pasa explícitamente a cada caso de uso.
type Session struct {
	UserID string
	Email  string
	Role   entity.Role
}

// IsAdmin indica si la sesión tiene rol admin.
func (s Session) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}

// CanManage indica si la sesión puede cambiar estados de documentos ajenos (manager o admin).
func (s Session) CanManage() bool {
	return s.Role == entity.RoleAdmin || s.Role == entity.RoleManager
}
