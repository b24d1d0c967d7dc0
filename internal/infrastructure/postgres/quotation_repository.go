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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationSelect = `
	SELECT q.id, q.number, q.customer_id, c.name, q.issue_date, q.valid_until, q.status, q.notes, q.terms,
	       q.subtotal, q.gst_amount, q.total_amount, COALESCE(q.created_by::text, ''), q.created_at, q.updated_at
	FROM quotations q
	JOIN customers c ON c.id = q.customer_id`

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// NextNumber reserva el siguiente consecutivo QT-00001 desde quotation_number_seq.
func (r *QuotationRepo) NextNumber(ctx context.Context) (string, error) {
	return nextNumber(ctx, r.q, "quotation_number_seq", entity.QuotationNumberPrefix)
}

// Create persiste la cabecera de la cotización.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, number, customer_id, issue_date, valid_until, status, notes, terms,
		                        subtotal, gst_amount, total_amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.Number, q.CustomerID, q.IssueDate, q.ValidUntil, q.Status.String(), q.Notes, q.Terms,
		q.Totals.Subtotal, q.Totals.TaxAmount, q.Totals.GrandTotal, nullIfEmpty(q.CreatedBy), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de cotización %s", domain.ErrDuplicate, q.Number)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// Update actualiza cabecera y totales.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	query := `
		UPDATE quotations
		SET customer_id = $2, issue_date = $3, valid_until = $4, status = $5, notes = $6, terms = $7,
		    subtotal = $8, gst_amount = $9, total_amount = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.CustomerID, q.IssueDate, q.ValidUntil, q.Status.String(), q.Notes, q.Terms,
		q.Totals.Subtotal, q.Totals.TaxAmount, q.Totals.GrandTotal, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, id string, status entity.QuotationStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE quotations SET status = $2, updated_at = now() WHERE id = $1`, id, status.String())
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera (sin líneas).
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, quotationSelect+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}

// List lista cabeceras, más recientes primero.
func (r *QuotationRepo) List(ctx context.Context, filter repository.QuotationFilter) ([]*entity.Quotation, int, error) {
	var w where
	if filter.Status != nil {
		w.add("q.status = $%[1]d", filter.Status.String())
	}
	if filter.CustomerID != "" {
		w.add("q.customer_id = $%[1]d", filter.CustomerID)
	}
	w.search(filter.Search, "q.number", "c.name")

	total, err := w.count(ctx, r.q, "quotations q JOIN customers c ON c.id = q.customer_id")
	if err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, quotationSelect+w.String()+` ORDER BY q.issue_date DESC, q.number DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}

// Delete elimina la cotización; las líneas caen por ON DELETE CASCADE.
func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza todas las líneas de la cotización.
func (r *QuotationRepo) ReplaceItems(ctx context.Context, quotationID string, items []entity.DocumentItem) error {
	return quotationItems.replace(ctx, r.q, quotationID, items)
}

// GetItems devuelve las líneas ordenadas por posición.
func (r *QuotationRepo) GetItems(ctx context.Context, quotationID string) ([]entity.DocumentItem, error) {
	return quotationItems.list(ctx, r.q, quotationID)
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	var status string
	if err := row.Scan(
		&q.ID, &q.Number, &q.CustomerID, &q.CustomerName, &q.IssueDate, &q.ValidUntil, &status, &q.Notes, &q.Terms,
		&q.Totals.Subtotal, &q.Totals.TaxAmount, &q.Totals.GrandTotal, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s, err := entity.ParseQuotationStatus(status)
	if err != nil {
		return nil, err
	}
	q.Status = s
	return &q, nil
}
