package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y aceptación de invitaciones.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	validate       *validation.Validator
	jwtCfg         JWTConfig
	log            *logger.Logger
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	invitationRepo repository.InvitationRepository,
	validate *validation.Validator,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		validate:       validate,
		jwtCfg:         jwtCfg,
		log:            log.Named("auth"),
		now:            time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// RegisterUser crea un usuario con password bcrypt. El primer usuario del sistema queda como admin.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := entity.RoleUser
	if count == 0 {
		role = entity.RoleAdmin
	}
	user, err := uc.newUser(email, in.Password, in.FullName, in.Phone, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role.String()).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// AcceptInvitation crea la cuenta del invitado con el rol de la invitación y la marca como aceptada.
// Un token desconocido, cancelado o vencido devuelve ErrInvitationExpired.
func (uc *AuthUseCase) AcceptInvitation(ctx context.Context, in dto.AcceptInvitationRequest) (*dto.UserResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	inv, err := uc.invitationRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if inv == nil || !inv.CanAccept(now) {
		return nil, domain.ErrInvitationExpired
	}
	existing, err := uc.userRepo.GetByEmail(ctx, inv.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user, err := uc.newUser(inv.Email, in.Password, in.FullName, in.Phone, inv.Role)
	if err != nil {
		return nil, err
	}
	user.Department = inv.Department
	user.Designation = inv.Designation
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	inv.Status = entity.InvitationAccepted
	inv.AcceptedAt = &now
	inv.UpdatedAt = now
	if err := uc.invitationRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("invitation_id", inv.ID).Msg("invitación aceptada")
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) newUser(email, password, fullName, phone string, role entity.Role) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = email
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Phone:        phone,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Department:  u.Department,
		Designation: u.Designation,
		Role:        u.Role.String(),
		Status:      u.Status.String(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
