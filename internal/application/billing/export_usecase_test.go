package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
)

func newExportUseCase(f *fixture, pdf *fakePDF) *billing.ExportUseCase {
	return billing.NewExportUseCase(f.quotations, f.invoices, f.customers, pdf, fakeXML{},
		map[string]billing.TableWriter{"lines": lineTable{}})
}

func TestExportUseCase_QuotationPDFUsaLineasYTotalesGuardados(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	q, err := f.quoteUC.Create(ctx, member, dto.QuotationRequest{CustomerID: f.customer.ID, Terms: "50% anticipo", Items: workedItems()})
	require.NoError(t, err)

	pdf := &fakePDF{}
	file, err := newExportUseCase(f, pdf).QuotationPDF(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "quotation_QT-00001.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-fake"), file.Data)

	require.NotNil(t, pdf.last)
	assert.Equal(t, billing.KindQuotation, pdf.last.Kind)
	assert.Equal(t, "Valid Until", pdf.last.DueLabel())
	assert.Equal(t, "50% anticipo", pdf.last.Terms)
	assert.Equal(t, f.customer.GSTIN, pdf.last.Customer.GSTIN)
	assert.Len(t, pdf.last.Items, 2)
	assert.Equal(t, "288.50", pdf.last.Summary.GrandTotal.StringFixed(2))
}

func TestExportUseCase_InvoiceXML(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.invoiceUC.Create(ctx, member, dto.InvoiceRequest{CustomerID: f.customer.ID, Items: workedItems()})
	require.NoError(t, err)

	file, err := newExportUseCase(f, &fakePDF{}).InvoiceXML(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice_INV-00001.xml", file.Name)
	assert.Equal(t, "application/xml", file.ContentType)
	assert.Equal(t, `<invoice number="INV-00001" total="288.50"/>`, string(file.Data))

	_, err = newExportUseCase(f, &fakePDF{}).InvoicePDF(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportUseCase_ExportQuotationsFiltraYFormatea(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, status := range []string{"draft", "sent", "draft"} {
		_, err := f.quoteUC.Create(ctx, member, dto.QuotationRequest{CustomerID: f.customer.ID, Status: status, Items: workedItems()})
		require.NoError(t, err)
	}
	uc := newExportUseCase(f, &fakePDF{})

	file, err := uc.ExportQuotations(ctx, dto.QuotationListRequest{Status: "draft"}, "lines")
	require.NoError(t, err)
	assert.Equal(t, "quotations.txt", file.Name)
	assert.Equal(t, "text/plain", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Number|Customer|"))
	assert.Equal(t, "QT-00001|Acme Pvt Ltd|2024-01-15|2024-02-14|draft|250.00|38.50|288.50", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "QT-00003|"))

	_, err = uc.ExportQuotations(ctx, dto.QuotationListRequest{}, "pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportUseCase_ExportInvoices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.invoiceUC.Create(ctx, member, dto.InvoiceRequest{CustomerID: f.customer.ID, PaymentMethod: "cash", Items: workedItems()})
	require.NoError(t, err)

	file, err := newExportUseCase(f, &fakePDF{}).ExportInvoices(ctx, dto.InvoiceListRequest{}, "lines")
	require.NoError(t, err)
	assert.Equal(t, "invoices.txt", file.Name)
	assert.Contains(t, string(file.Data), "INV-00001|Acme Pvt Ltd|2024-01-15|2024-02-14|cash|one-time|unpaid|250.00|38.50|288.50")
}
