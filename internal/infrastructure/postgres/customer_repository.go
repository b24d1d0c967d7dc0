package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, email, phone, company, industry, country, location, address, gstin, pan, status, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Country, c.Location, c.Address,
		nullIfEmpty(c.GSTIN), c.PAN, c.Status.String(), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByGSTIN obtiene un cliente por GSTIN.
func (r *CustomerRepo) GetByGSTIN(ctx context.Context, gstin string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE gstin = $1`, gstin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by gstin: %w", err)
	}
	return c, nil
}

// List lista clientes ordenados por nombre con el total que cumple el filtro.
func (r *CustomerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, int, error) {
	var w where
	if filter.Status != nil {
		w.add("status = $%[1]d", filter.Status.String())
	}
	w.search(filter.Search, "name", "email", "company", "gstin")

	total, err := w.count(ctx, r.q, "customers")
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+w.String()+` ORDER BY name`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, company = $5, industry = $6, country = $7,
		    location = $8, address = $9, gstin = $10, pan = $11, status = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Industry, c.Country, c.Location, c.Address,
		nullIfEmpty(c.GSTIN), c.PAN, c.Status.String(), c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID. Falla con ErrConflict si tiene documentos.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente tiene cotizaciones o facturas", domain.ErrConflict)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var gstin *string
	var status string
	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Industry, &c.Country, &c.Location, &c.Address,
		&gstin, &c.PAN, &status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if gstin != nil {
		c.GSTIN = *gstin
	}
	s, err := entity.ParseCustomerStatus(status)
	if err != nil {
		return nil, err
	}
	c.Status = s
	return &c, nil
}
