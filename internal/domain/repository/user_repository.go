package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// UserFilter criterios de listado del equipo.
type UserFilter struct {
	Role   *entity.Role
	Status *entity.UserStatus
	Search string // nombre o email
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, int, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
