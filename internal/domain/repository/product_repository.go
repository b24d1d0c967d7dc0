package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo.
type ProductFilter struct {
	Search     string
	Category   string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
