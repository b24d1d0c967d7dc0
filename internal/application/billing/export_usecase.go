package billing

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/money"
)

// exportPageSize tamaño de página al recorrer listados completos para exportar.
const exportPageSize = 100

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase genera PDF y XML de documentos y exporta listados (CSV, XLSX).
// Solo lee líneas y totales; no recalcula ni modifica documentos.
type ExportUseCase struct {
	quotationRepo repository.QuotationRepository
	invoiceRepo   repository.InvoiceRepository
	customerRepo  repository.CustomerRepository
	pdf           DocumentPDFGenerator
	xml           DocumentXMLWriter
	tables        map[string]TableWriter
}

// NewExportUseCase construye el caso de uso. tables se indexa por formato ("csv", "xlsx").
func NewExportUseCase(
	quotationRepo repository.QuotationRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	pdf DocumentPDFGenerator,
	xml DocumentXMLWriter,
	tables map[string]TableWriter,
) *ExportUseCase {
	return &ExportUseCase{
		quotationRepo: quotationRepo,
		invoiceRepo:   invoiceRepo,
		customerRepo:  customerRepo,
		pdf:           pdf,
		xml:           xml,
		tables:        tables,
	}
}

// QuotationPDF genera el PDF de una cotización.
func (uc *ExportUseCase) QuotationPDF(ctx context.Context, id string) (*ExportFile, error) {
	doc, err := uc.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderPDF(ctx, doc)
}

// InvoicePDF genera el PDF de una factura.
func (uc *ExportUseCase) InvoicePDF(ctx context.Context, id string) (*ExportFile, error) {
	doc, err := uc.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderPDF(ctx, doc)
}

// QuotationXML genera el XML de una cotización.
func (uc *ExportUseCase) QuotationXML(ctx context.Context, id string) (*ExportFile, error) {
	doc, err := uc.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderXML(doc)
}

// InvoiceXML genera el XML de una factura.
func (uc *ExportUseCase) InvoiceXML(ctx context.Context, id string) (*ExportFile, error) {
	doc, err := uc.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.renderXML(doc)
}

func (uc *ExportUseCase) renderPDF(ctx context.Context, doc *PrintableDocument) (*ExportFile, error) {
	data, err := uc.pdf.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("%s_%s.pdf", doc.Kind, doc.Number),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (uc *ExportUseCase) renderXML(doc *PrintableDocument) (*ExportFile, error) {
	var buf bytes.Buffer
	if err := uc.xml.WriteDocumentXML(&buf, doc); err != nil {
		return nil, fmt.Errorf("xml: generación fallida: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("%s_%s.xml", doc.Kind, doc.Number),
		ContentType: "application/xml",
		Data:        buf.Bytes(),
	}, nil
}

func (uc *ExportUseCase) quotationDocument(ctx context.Context, id string) (*PrintableDocument, error) {
	q, err := uc.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cotización: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if q.Items, err = uc.quotationRepo.GetItems(ctx, id); err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}
	customer, err := uc.customer(ctx, q.CustomerID)
	if err != nil {
		return nil, err
	}
	return printableQuotation(q, customer), nil
}

func (uc *ExportUseCase) invoiceDocument(ctx context.Context, id string) (*PrintableDocument, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Items, err = uc.invoiceRepo.GetItems(ctx, id); err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}
	customer, err := uc.customer(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	return printableInvoice(inv, customer), nil
}

func (uc *ExportUseCase) customer(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return &entity.Customer{ID: id}, nil
	}
	return c, nil
}

// ExportQuotations exporta el listado filtrado de cotizaciones en el formato indicado.
func (uc *ExportUseCase) ExportQuotations(ctx context.Context, in dto.QuotationListRequest, format string) (*ExportFile, error) {
	writer, err := uc.writer(format)
	if err != nil {
		return nil, err
	}
	filter := repository.QuotationFilter{CustomerID: in.CustomerID, Search: in.Search, Limit: exportPageSize}
	if in.Status != "" {
		s, err := entity.ParseQuotationStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	table := &Table{
		Name:    "Quotations",
		Headers: []string{"Number", "Customer", "Issue Date", "Valid Until", "Status", "Subtotal", "Tax", "Grand Total"},
	}
	for {
		page, total, err := uc.quotationRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("listar cotizaciones: %w", err)
		}
		for _, q := range page {
			table.Rows = append(table.Rows, []string{
				q.Number, q.CustomerName,
				pricing.FormatDate(q.IssueDate), pricing.FormatDate(q.ValidUntil),
				q.Status.String(),
				money.Plain(q.Totals.Subtotal), money.Plain(q.Totals.TaxAmount), money.Plain(q.Totals.GrandTotal),
			})
		}
		filter.Offset += len(page)
		if len(page) == 0 || filter.Offset >= total {
			break
		}
	}
	return uc.renderTable(writer, table, "quotations")
}

// ExportInvoices exporta el listado filtrado de facturas en el formato indicado.
func (uc *ExportUseCase) ExportInvoices(ctx context.Context, in dto.InvoiceListRequest, format string) (*ExportFile, error) {
	writer, err := uc.writer(format)
	if err != nil {
		return nil, err
	}
	filter := repository.InvoiceFilter{CustomerID: in.CustomerID, Search: in.Search, Limit: exportPageSize}
	if in.Status != "" {
		s, err := entity.ParseInvoiceStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &s
	}
	table := &Table{
		Name:    "Invoices",
		Headers: []string{"Number", "Customer", "Issue Date", "Due Date", "Payment Method", "Frequency", "Status", "Subtotal", "Tax", "Grand Total"},
	}
	for {
		page, total, err := uc.invoiceRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("listar facturas: %w", err)
		}
		for _, inv := range page {
			table.Rows = append(table.Rows, []string{
				inv.Number, inv.CustomerName,
				pricing.FormatDate(inv.IssueDate), pricing.FormatDate(inv.DueDate),
				inv.PaymentMethod.String(), inv.Frequency.String(), inv.Status.String(),
				money.Plain(inv.Totals.Subtotal), money.Plain(inv.Totals.TaxAmount), money.Plain(inv.Totals.GrandTotal),
			})
		}
		filter.Offset += len(page)
		if len(page) == 0 || filter.Offset >= total {
			break
		}
	}
	return uc.renderTable(writer, table, "invoices")
}

func (uc *ExportUseCase) writer(format string) (TableWriter, error) {
	w, ok := uc.tables[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación no soportado %q", domain.ErrInvalidInput, format)
	}
	return w, nil
}

func (uc *ExportUseCase) renderTable(w TableWriter, table *Table, base string) (*ExportFile, error) {
	var buf bytes.Buffer
	if err := w.WriteTable(&buf, table); err != nil {
		return nil, fmt.Errorf("exportar %s: %w", base, err)
	}
	return &ExportFile{
		Name:        base + "." + w.Extension(),
		ContentType: w.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
