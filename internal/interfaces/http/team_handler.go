package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
)

// TeamHandler administración del equipo: usuarios e invitaciones.
type TeamHandler struct {
	users       *usecase.UserUseCase
	invitations *usecase.InvitationUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(users *usecase.UserUseCase, invitations *usecase.InvitationUseCase) *TeamHandler {
	return &TeamHandler{users: users, invitations: invitations}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/me [get]
func (h *TeamHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        role    query  string  false  "admin | manager | user"
// @Param        status  query  string  false  "active | inactive | suspended"
// @Param        search  query  string  false  "Nombre o email"
// @Success      200     {object}  dto.UserListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/team/users [get]
func (h *TeamHandler) ListUsers(c *fiber.Ctx) error {
	var in dto.UserListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.users.List(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Obtener usuario
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/users/{id} [get]
func (h *TeamHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil
// @Description  El propio usuario o un admin.
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.UpdateProfileRequest  true  "Perfil"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/team/users/{id} [put]
func (h *TeamHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.UpdateProfile(c.UserContext(), SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "Rol"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team/users/{id}/role [patch]
func (h *TeamHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.UpdateRole(c.UserContext(), SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cuenta
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del usuario"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "Estado"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team/users/{id}/status [patch]
func (h *TeamHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.UpdateStatus(c.UserContext(), SessionFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         team
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/team/users/{id} [delete]
func (h *TeamHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), SessionFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInvitations godoc
// @Summary      Listar invitaciones
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        status  query  string  false  "pending | accepted | cancelled | expired"
// @Success      200     {object}  dto.InvitationListResponse
// @Router       /api/team/invitations [get]
func (h *TeamHandler) ListInvitations(c *fiber.Ctx) error {
	var in dto.InvitationListRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.invitations.List(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Invitar miembro
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "Email y rol"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team/invitations [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.invitations.Create(c.UserContext(), SessionFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ResendInvitation godoc
// @Summary      Reenviar invitación
// @Description  Genera un token nuevo y renueva el vencimiento.
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la invitación"
// @Success      200  {object}  dto.InvitationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/team/invitations/{id}/resend [post]
func (h *TeamHandler) ResendInvitation(c *fiber.Ctx) error {
	out, err := h.invitations.Resend(c.UserContext(), SessionFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelInvitation godoc
// @Summary      Cancelar invitación
// @Tags         team
// @Security     Bearer
// @Param        id   path  string  true  "ID de la invitación"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/team/invitations/{id} [delete]
func (h *TeamHandler) CancelInvitation(c *fiber.Ctx) error {
	if err := h.invitations.Cancel(c.UserContext(), SessionFrom(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
