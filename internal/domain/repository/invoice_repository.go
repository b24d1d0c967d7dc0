package repository

import (
	"context"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// InvoiceFilter criterios de listado de facturas.
type InvoiceFilter struct {
	Status     *entity.InvoiceStatus
	CustomerID string
	Search     string
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// NextNumber reserva el siguiente consecutivo (INV-00001).
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, inv *entity.Invoice) error
	Update(ctx context.Context, inv *entity.Invoice) error
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByQuotationID devuelve la factura generada desde la cotización, si existe.
	GetByQuotationID(ctx context.Context, quotationID string) (*entity.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int, error)
	Delete(ctx context.Context, id string) error
	ReplaceItems(ctx context.Context, invoiceID string, items []entity.DocumentItem) error
	GetItems(ctx context.Context, invoiceID string) ([]entity.DocumentItem, error)
	// MarkOverdue pasa a overdue las facturas unpaid con vencimiento anterior a today.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}
