package dto

import "time"

// RegisterRequest entrada para registro. El primer usuario del sistema queda como admin.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AcceptInvitationRequest entrada para aceptar una invitación y crear la cuenta.
type AcceptInvitationRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone,omitempty"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListRequest filtros de GET /api/team/users.
type UserListRequest struct {
	PageRequest
	Role   string `query:"role" validate:"omitempty,enum=role"`
	Status string `query:"status" validate:"omitempty,enum=user_status"`
	Search string `query:"search" validate:"omitempty,max=100"`
}

// UserListResponse lista paginada del equipo.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateRoleRequest body para PATCH /api/team/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,enum=role"`
}

// UpdateUserStatusRequest body para PATCH /api/team/users/:id/status.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,enum=user_status"`
}

// UpdateProfileRequest body para PUT /api/team/users/:id.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	Designation string `json:"designation" validate:"omitempty,max=100"`
}

// CreateInvitationRequest body para POST /api/team/invitations.
type CreateInvitationRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,enum=role"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	Designation string `json:"designation" validate:"omitempty,max=100"`
}

// InvitationListRequest filtros de GET /api/team/invitations.
type InvitationListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,enum=invitation_status"`
}

// InvitationResponse invitación en respuestas. Token solo se devuelve al crear o reenviar.
type InvitationResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Department  string    `json:"department,omitempty"`
	Designation string    `json:"designation,omitempty"`
	Status      string    `json:"status"`
	Token       string    `json:"token,omitempty"`
	InvitedBy   string    `json:"invited_by"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// InvitationListResponse lista paginada de invitaciones.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
