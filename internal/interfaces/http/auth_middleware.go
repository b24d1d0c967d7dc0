package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/session"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// Locals keys para los claims del JWT en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y carga user_id, email y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// UserLookup lectura del usuario vigente.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// CurrentUser recarga al usuario del token: rol y email salen de la base, no de los claims.
// Usuario eliminado responde 401; suspendido, 403. Va después de AuthMiddleware.
func CurrentUser(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := users.GetByID(c.UserContext(), GetUserID(c))
		if err != nil {
			return err
		}
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "el usuario del token ya no existe"})
		}
		if !u.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_SUSPENDED", Message: "usuario suspendido"})
		}
		c.Locals(LocalEmail, u.Email)
		c.Locals(LocalRole, u.Role.String())
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Va después de AuthMiddleware.
// Un token sin rol responde 401 MISSING_ROLE; un rol no permitido, 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if _, ok := allowed[strings.ToLower(role)]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetRole devuelve el rol tal como viene en el token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// SessionFrom arma la sesión que reciben los casos de uso. Un rol desconocido queda como user.
func SessionFrom(c *fiber.Ctx) session.Session {
	role, err := entity.ParseRole(GetRole(c))
	if err != nil {
		role = entity.RoleUser
	}
	return session.Session{
		UserID: GetUserID(c),
		Email:  GetEmail(c),
		Role:   role,
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
