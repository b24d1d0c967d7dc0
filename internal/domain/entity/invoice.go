package entity

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// InvoiceNumberPrefix prefijo del consecutivo de facturas (INV-00001).
const InvoiceNumberPrefix = "INV"

// Invoice cabecera de una factura con sus líneas.
type Invoice struct {
	ID            string
	Number        string
	CustomerID    string
	CustomerName  string // solo lectura (join)
	QuotationID   string // vacío si no proviene de una cotización
	IssueDate     time.Time
	DueDate       time.Time
	PaymentMethod PaymentMethod
	Frequency     Frequency
	Status        InvoiceStatus
	Notes         string
	Totals        pricing.Summary
	Items         []DocumentItem
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOverdue indica si la factura sigue sin pagar después de su vencimiento.
func (inv *Invoice) IsOverdue(today time.Time) bool {
	return inv.Status == InvoiceUnpaid && inv.DueDate.Before(pricing.DateOf(today))
}
