package billing

import (
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// DocumentKind tipo de documento imprimible.
type DocumentKind string

const (
	KindQuotation DocumentKind = "quotation"
	KindInvoice   DocumentKind = "invoice"
)

// Title título del documento impreso.
func (k DocumentKind) Title() string {
	if k == KindInvoice {
		return "Invoice"
	}
	return "Quotation"
}

// PrintableDocument vista de solo lectura de un documento para PDF/XML.
// Items y Summary se toman tal cual; los colaboradores de exportación no recalculan nada.
type PrintableDocument struct {
	Kind          DocumentKind
	Number        string
	Status        string
	IssueDate     time.Time
	DueDate       time.Time // valid_until en cotizaciones
	PaymentMethod string    // solo facturas
	Frequency     string    // solo facturas
	Notes         string
	Terms         string
	Customer      *entity.Customer
	Items         pricing.Items
	Summary       pricing.Summary
}

// DueLabel etiqueta de la segunda fecha según el tipo de documento.
func (d *PrintableDocument) DueLabel() string {
	if d.Kind == KindInvoice {
		return "Due Date"
	}
	return "Valid Until"
}

// Table listado tabular para exportación (primera fila = encabezados).
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

func printableQuotation(q *entity.Quotation, customer *entity.Customer) *PrintableDocument {
	items := entity.PricingItems(q.Items)
	return &PrintableDocument{
		Kind:      KindQuotation,
		Number:    q.Number,
		Status:    q.Status.String(),
		IssueDate: q.IssueDate,
		DueDate:   q.ValidUntil,
		Notes:     q.Notes,
		Terms:     q.Terms,
		Customer:  customer,
		Items:     items,
		Summary:   pricing.ComputeSummary(items),
	}
}

func printableInvoice(inv *entity.Invoice, customer *entity.Customer) *PrintableDocument {
	items := entity.PricingItems(inv.Items)
	return &PrintableDocument{
		Kind:          KindInvoice,
		Number:        inv.Number,
		Status:        inv.Status.String(),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaymentMethod: inv.PaymentMethod.String(),
		Frequency:     inv.Frequency.String(),
		Notes:         inv.Notes,
		Customer:      customer,
		Items:         items,
		Summary:       pricing.ComputeSummary(items),
	}
}
