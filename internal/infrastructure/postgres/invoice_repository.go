package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceSelect = `
	SELECT i.id, i.number, i.customer_id, c.name, COALESCE(i.quotation_id::text, ''), i.issue_date, i.due_date,
	       i.payment_method, i.frequency, i.status, i.notes,
	       i.subtotal, i.gst_amount, i.total_amount, COALESCE(i.created_by::text, ''), i.created_at, i.updated_at
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// NextNumber reserva el siguiente consecutivo INV-00001 desde invoice_number_seq.
func (r *InvoiceRepo) NextNumber(ctx context.Context) (string, error) {
	return nextNumber(ctx, r.q, "invoice_number_seq", entity.InvoiceNumberPrefix)
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, customer_id, quotation_id, issue_date, due_date, payment_method, frequency,
		                      status, notes, subtotal, gst_amount, total_amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.CustomerID, nullIfEmpty(inv.QuotationID), inv.IssueDate, inv.DueDate,
		inv.PaymentMethod.String(), inv.Frequency.String(), inv.Status.String(), inv.Notes,
		inv.Totals.Subtotal, inv.Totals.TaxAmount, inv.Totals.GrandTotal,
		nullIfEmpty(inv.CreatedBy), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura %s o cotización ya facturada", domain.ErrDuplicate, inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update actualiza cabecera y totales.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2, quotation_id = $3, issue_date = $4, due_date = $5, payment_method = $6,
		    frequency = $7, status = $8, notes = $9, subtotal = $10, gst_amount = $11, total_amount = $12,
		    updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, nullIfEmpty(inv.QuotationID), inv.IssueDate, inv.DueDate,
		inv.PaymentMethod.String(), inv.Frequency.String(), inv.Status.String(), inv.Notes,
		inv.Totals.Subtotal, inv.Totals.TaxAmount, inv.Totals.GrandTotal, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la cotización ya fue facturada", domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado de pago.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status.String())
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera (sin líneas).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `i.id = $1`, id)
}

// GetByQuotationID obtiene la factura generada desde una cotización.
func (r *InvoiceRepo) GetByQuotationID(ctx context.Context, quotationID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `i.quotation_id = $1`, quotationID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, cond string, arg string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE `+cond, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List lista cabeceras, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var w where
	if filter.Status != nil {
		w.add("i.status = $%[1]d", filter.Status.String())
	}
	if filter.CustomerID != "" {
		w.add("i.customer_id = $%[1]d", filter.CustomerID)
	}
	w.search(filter.Search, "i.number", "c.name")

	total, err := w.count(ctx, r.q, "invoices i JOIN customers c ON c.id = i.customer_id")
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.q.Query(ctx, invoiceSelect+w.String()+` ORDER BY i.issue_date DESC, i.number DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza todas las líneas de la factura.
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, invoiceID string, items []entity.DocumentItem) error {
	return invoiceItems.replace(ctx, r.q, invoiceID, items)
}

// GetItems devuelve las líneas ordenadas por posición.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]entity.DocumentItem, error) {
	return invoiceItems.list(ctx, r.q, invoiceID)
}

// MarkOverdue pasa a overdue las facturas unpaid con due_date anterior a today.
func (r *InvoiceRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $1, updated_at = now()
		WHERE status = $2 AND due_date < $3`,
		entity.InvoiceOverdue.String(), entity.InvoiceUnpaid.String(), today,
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue invoices: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var method, frequency, status string
	if err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.CustomerName, &inv.QuotationID, &inv.IssueDate, &inv.DueDate,
		&method, &frequency, &status, &inv.Notes,
		&inv.Totals.Subtotal, &inv.Totals.TaxAmount, &inv.Totals.GrandTotal, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if inv.PaymentMethod, err = entity.ParsePaymentMethod(method); err != nil {
		return nil, err
	}
	if inv.Frequency, err = entity.ParseFrequency(frequency); err != nil {
		return nil, err
	}
	if inv.Status, err = entity.ParseInvoiceStatus(status); err != nil {
		return nil, err
	}
	return &inv, nil
}
