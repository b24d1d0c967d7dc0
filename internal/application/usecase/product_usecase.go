package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/validation"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/session"
)

// CatalogInvalidator descarta entradas cacheadas del catálogo tras una escritura.
type CatalogInvalidator interface {
	Invalidate(productID string)
}

// ProductUseCase casos de uso CRUD del catálogo.
// Editar un producto no modifica las líneas ya guardadas en cotizaciones o facturas.
type ProductUseCase struct {
	repo     repository.ProductRepository
	cache    CatalogInvalidator
	validate *validation.Validator
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, cache CatalogInvalidator, validate *validation.Validator) *ProductUseCase {
	return &ProductUseCase{repo: repo, cache: cache, validate: validate}
}

// Create crea un nuevo producto del catálogo (activo por defecto).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Category:       in.Category,
		UnitPrice:      in.UnitPrice,
		TaxRatePercent: in.GSTPercentage,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados e invalida la entrada del catálogo en caché.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.GSTPercentage != nil {
		product.TaxRatePercent = *in.GSTPercentage
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(id)
	return toProductResponse(product), nil
}

// List lista el catálogo con paginación y filtros.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:     in.Search,
		Category:   in.Category,
		ActiveOnly: in.ActiveOnly,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un producto. Las líneas que lo referenciaban conservan sus valores.
func (uc *ProductUseCase) Delete(ctx context.Context, sess session.Session, id string) error {
	if !sess.CanManage() {
		return domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(id)
	return nil
}

func (uc *ProductUseCase) invalidate(id string) {
	if uc.cache != nil {
		uc.cache.Invalidate(id)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		UnitPrice:     p.UnitPrice,
		GSTPercentage: p.TaxRatePercent,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
