package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/crm-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

type memUsers struct {
	byID map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (m *memUsers) Count(context.Context) (int, error) { return len(m.byID), nil }

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memInvitations struct {
	byID map[string]*entity.TeamInvitation
}

func (m *memInvitations) Create(_ context.Context, inv *entity.TeamInvitation) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvitations) GetByID(_ context.Context, id string) (*entity.TeamInvitation, error) {
	if inv, ok := m.byID[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (m *memInvitations) GetByToken(_ context.Context, token string) (*entity.TeamInvitation, error) {
	for _, inv := range m.byID {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memInvitations) GetPendingByEmail(context.Context, string) (*entity.TeamInvitation, error) {
	return nil, nil
}

func (m *memInvitations) Update(_ context.Context, inv *entity.TeamInvitation) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInvitations) List(context.Context, repository.InvitationFilter) ([]*entity.TeamInvitation, int, error) {
	return nil, 0, nil
}

var testNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func newAuth() (*auth.AuthUseCase, *memUsers, *memInvitations) {
	users := &memUsers{byID: map[string]*entity.User{}}
	invs := &memInvitations{byID: map[string]*entity.TeamInvitation{}}
	uc := auth.NewAuthUseCase(users, invs, validation.New(),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "crm-api"}, nil).
		WithClock(func() time.Time { return testNow })
	return uc, users, invs
}

func TestAuthUseCase_RegisterPrimerUsuarioEsAdmin(t *testing.T) {
	uc, users, _ := newAuth()
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Owner@Empresa.test", Password: "contraseña1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", first.Role)
	assert.Equal(t, "owner@empresa.test", first.Email)
	assert.Equal(t, "owner@empresa.test", first.FullName)
	assert.NotEqual(t, "contraseña1", users.byID[first.ID].PasswordHash)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "otro@empresa.test", Password: "contraseña2", FullName: "Otro"})
	require.NoError(t, err)
	assert.Equal(t, "user", second.Role)
	assert.Equal(t, "active", second.Status)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "OTRO@empresa.test", Password: "contraseña3"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "corta@empresa.test", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthUseCase_LoginGeneraTokenConRol(t *testing.T) {
	uc, _, _ := newAuth()
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@empresa.test", Password: "contraseña1"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@empresa.test", Password: "contraseña1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, resp.User.ID)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
	assert.Equal(t, "admin@empresa.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "crm-api", claims.Issuer)
}

func TestAuthUseCase_LoginErrores(t *testing.T) {
	uc, users, _ := newAuth()
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@empresa.test", Password: "contraseña1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@empresa.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@empresa.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users.byID[reg.ID].Status = entity.UserSuspended
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@empresa.test", Password: "contraseña1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthUseCase_AcceptInvitation(t *testing.T) {
	uc, users, invs := newAuth()
	ctx := context.Background()
	invs.byID["inv-1"] = &entity.TeamInvitation{
		ID: "inv-1", Email: "nuevo@empresa.test", Role: entity.RoleManager,
		Department: "Ventas", Designation: "Jefe", Token: "tok-1",
		ExpiresAt: testNow.Add(24 * time.Hour), Status: entity.InvitationPending,
	}

	user, err := uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: "tok-1", Password: "contraseña1", FullName: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Role)
	assert.Equal(t, "nuevo@empresa.test", user.Email)
	assert.Equal(t, "Ventas", user.Department)
	assert.Contains(t, users.byID, user.ID)

	stored := invs.byID["inv-1"]
	assert.Equal(t, entity.InvitationAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
	assert.Equal(t, testNow, *stored.AcceptedAt)

	_, err = uc.AcceptInvitation(ctx, dto.AcceptInvitationRequest{Token: "tok-1", Password: "contraseña1", FullName: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrInvitationExpired, "una invitación aceptada no se reutiliza")
}

func TestAuthUseCase_AcceptInvitationVencidaODesconocida(t *testing.T) {
	uc, _, invs := newAuth()
	ctx := context.Background()
	invs.byID["inv-1"] = &entity.TeamInvitation{
		ID: "inv-1", Email: "tarde@empresa.test", Token: "tok-viejo",
		ExpiresAt: testNow.Add(-time.Minute), Status: entity.InvitationPending,
	}
	in := dto.AcceptInvitationRequest{Token: "tok-viejo", Password: "contraseña1", FullName: "Tarde"}

	_, err := uc.AcceptInvitation(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)

	in.Token = "no-existe"
	_, err = uc.AcceptInvitation(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}
