package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/internal/infrastructure/pdf"
)

func sampleDocument(kind billing.DocumentKind) *billing.PrintableDocument {
	items := pricing.Items{
		{Name: "Consultoría", Quantity: 2, UnitPrice: decimal.NewFromInt(100), TaxRatePercent: decimal.NewFromInt(18)},
		{Name: "Soporte", Quantity: 1, UnitPrice: decimal.NewFromInt(50), TaxRatePercent: decimal.NewFromInt(5)},
	}
	issue := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &billing.PrintableDocument{
		Kind:          kind,
		Number:        "QT-00001",
		Status:        "draft",
		IssueDate:     issue,
		DueDate:       pricing.SyncExpiryDate(issue),
		PaymentMethod: "upi",
		Frequency:     "one-time",
		Notes:         "Gracias por su preferencia",
		Terms:         "Pago a 30 días",
		Customer:      &entity.Customer{Name: "Acme", GSTIN: "27AAAAA0000A1Z5"},
		Items:         items,
		Summary:       pricing.ComputeSummary(items),
	}
}

func TestMarotoPDFGenerator_GeneraCotizacion(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("CRM", nil)

	out, err := g.GenerateDocumentPDF(context.Background(), sampleDocument(billing.KindQuotation))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoPDFGenerator_GeneraFacturaSinCliente(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("CRM", nil)
	doc := sampleDocument(billing.KindInvoice)
	doc.Customer = nil
	doc.Notes = ""
	doc.Terms = ""

	out, err := g.GenerateDocumentPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
