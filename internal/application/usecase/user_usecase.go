package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/session"
)

// UserUseCase administración del equipo: listado, roles, estados y perfiles.
type UserUseCase struct {
	repo     repository.UserRepository
	validate *validation.Validator
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, validate *validation.Validator) *UserUseCase {
	return &UserUseCase{repo: repo, validate: validate}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List lista el equipo con filtros de rol, estado y búsqueda. Requiere manager o admin.
func (uc *UserUseCase) List(ctx context.Context, sess session.Session, in dto.UserListRequest) (*dto.UserListResponse, error) {
	if !sess.CanManage() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.UserFilter{Search: in.Search, Limit: in.Limit, Offset: in.Offset}
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = &r
	}
	if in.Status != "" {
		s, err := entity.ParseUserStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, u := range list {
		out.Items = append(out.Items, *entityToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol de un usuario. Solo admin; un admin no puede cambiar su propio rol.
func (uc *UserUseCase) UpdateRole(ctx context.Context, sess session.Session, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if id == sess.UserID {
		return nil, fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrConflict)
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return uc.save(ctx, user)
}

// UpdateStatus activa, desactiva o suspende un usuario. Solo admin; no sobre sí mismo.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, sess session.Session, id string, in dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if id == sess.UserID {
		return nil, fmt.Errorf("%w: no puede cambiar su propio estado", domain.ErrConflict)
	}
	status, err := entity.ParseUserStatus(in.Status)
	if err != nil {
		return nil, err
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = status
	return uc.save(ctx, user)
}

// UpdateProfile actualiza nombre, teléfono, departamento y cargo. El propio usuario o un admin.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, sess session.Session, id string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if id != sess.UserID && !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FullName = strings.TrimSpace(in.FullName)
	user.Phone = in.Phone
	user.Department = in.Department
	user.Designation = in.Designation
	return uc.save(ctx, user)
}

// Delete elimina un usuario. Solo admin; no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, sess session.Session, id string) error {
	if !sess.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == sess.UserID {
		return fmt.Errorf("%w: no puede eliminar su propia cuenta", domain.ErrConflict)
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) save(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
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
