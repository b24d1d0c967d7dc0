package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, category, unit_price, gst_percentage, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.UnitPrice, p.TaxRatePercent, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del producto. Los documentos ya emitidos no cambian.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, unit_price = $5, gst_percentage = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Category, p.UnitPrice, p.TaxRatePercent, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista el catálogo por nombre.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var w where
	if filter.ActiveOnly {
		w.add("active = $%[1]d", true)
	}
	if filter.Category != "" {
		w.add("category = $%[1]d", filter.Category)
	}
	w.search(filter.Search, "name", "description")

	total, err := w.count(ctx, r.q, "products")
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+w.String()+` ORDER BY name`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto. Las líneas que lo referencian conservan sus valores copiados.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.UnitPrice, &p.TaxRatePercent, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
