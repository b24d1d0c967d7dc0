package billing

import (
	"context"
	"io"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta una función dentro de una transacción con los repos de documentos.
// Cabecera y líneas de cotizaciones y facturas se escriben siempre a través de él.
type DocumentTxRunner interface {
	RunDocuments(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// DocumentPDFGenerator genera la representación PDF de una cotización o factura.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *PrintableDocument) ([]byte, error)
}

// DocumentXMLWriter escribe una cotización o factura como XML.
type DocumentXMLWriter interface {
	WriteDocumentXML(w io.Writer, doc *PrintableDocument) error
}

// TableWriter escribe un listado tabular (CSV, XLSX).
type TableWriter interface {
	WriteTable(w io.Writer, table *Table) error
	ContentType() string
	Extension() string
}
