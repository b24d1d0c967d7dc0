package billing

import (
	"context"
	"fmt"
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

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	validate *validation.Validator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, validate *validation.Validator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, validate: validate}
}

// Create crea un nuevo cliente. Un GSTIN ya registrado devuelve ErrDuplicate.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if err := uc.checkGSTIN(ctx, in.GSTIN, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyCustomer(customer, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes con filtro de estado y búsqueda.
func (uc *CustomerUseCase) List(ctx context.Context, in dto.CustomerListRequest) (*dto.CustomerListResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.CustomerFilter{Search: in.Search, Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		s, err := entity.ParseCustomerStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	in.GSTIN = strings.ToUpper(strings.TrimSpace(in.GSTIN))
	if err := uc.checkGSTIN(ctx, in.GSTIN, id); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = customer.Status.String()
	}
	if err := applyCustomer(customer, in); err != nil {
		return nil, err
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente. Requiere rol manager o admin.
func (uc *CustomerUseCase) Delete(ctx context.Context, sess session.Session, id string) error {
	if !sess.CanManage() {
		return domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	return nil
}

func (uc *CustomerUseCase) checkGSTIN(ctx context.Context, gstin, selfID string) error {
	if gstin == "" {
		return nil
	}
	existing, err := uc.repo.GetByGSTIN(ctx, gstin)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe un cliente con GSTIN %s", domain.ErrDuplicate, gstin)
	}
	return nil
}

func applyCustomer(c *entity.Customer, in dto.CreateCustomerRequest) error {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.Company = in.Company
	c.Industry = in.Industry
	c.Country = in.Country
	c.Location = in.Location
	c.Address = in.Address
	c.GSTIN = in.GSTIN
	c.PAN = strings.ToUpper(strings.TrimSpace(in.PAN))
	c.Status = entity.CustomerActive
	if in.Status != "" {
		s, err := entity.ParseCustomerStatus(in.Status)
		if err != nil {
			return err
		}
		c.Status = s
	}
	return nil
}
