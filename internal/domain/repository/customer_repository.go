package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// CustomerFilter criterios de listado de clientes. Status nil = todos.
type CustomerFilter struct {
	Status *entity.CustomerStatus
	Search string // nombre, email, empresa o GSTIN
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get devuelven (nil, nil) si no existe el registro.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
