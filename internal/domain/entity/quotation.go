package entity

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// QuotationNumberPrefix prefijo del consecutivo de cotizaciones (QT-00001).
const QuotationNumberPrefix = "QT"

// Quotation cabecera de una cotización con sus líneas.
// Totals se guarda redondeado y siempre se recalcula desde Items al crear o actualizar.
type Quotation struct {
	ID           string
	Number       string
	CustomerID   string
	CustomerName string // solo lectura (join)
	IssueDate    time.Time
	ValidUntil   time.Time
	Status       QuotationStatus
	Notes        string
	Terms        string
	Totals       pricing.Summary
	Items        []DocumentItem
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanConvert indica si la cotización puede convertirse en factura.
func (q *Quotation) CanConvert() bool {
	return q.Status == QuotationAccepted
}
