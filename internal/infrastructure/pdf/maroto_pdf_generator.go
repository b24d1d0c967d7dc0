// Package pdf genera la representación impresa de cotizaciones y facturas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° documento │ Emisión + Vencimiento       │
//	│  CLIENTE: Nombre, empresa, GSTIN, contacto                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | Cant | P.Unit | GST% | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / GST / Total                             │
//	│  NOTAS y TÉRMINOS + QR de referencia                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/pkg/money"
)

var _ billing.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer string
	fmt    *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. issuer aparece como autor del PDF.
func NewMarotoPDFGenerator(issuer string, formatter *money.Formatter) *MarotoPDFGenerator {
	if formatter == nil {
		formatter = money.Default()
	}
	return &MarotoPDFGenerator{issuer: issuer, fmt: formatter}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes. Los importes se imprimen tal como vienen en doc.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *billing.PrintableDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Kind.Title()+" "+doc.Number, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc.Customer))
	if doc.Kind == billing.KindInvoice {
		m.AddRows(paymentRow(doc))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableItemRows(doc.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc.Summary))

	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y número (izq), fechas y estado (der).
func headerRow(doc *billing.PrintableDocument) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.Kind.Title(), props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 10,
			}),
		),
		col.New(5).Add(
			text.New("Date: "+pricing.FormatDate(doc.IssueDate), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(doc.DueLabel()+": "+pricing.FormatDate(doc.DueDate), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Status: "+doc.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(c *entity.Customer) core.Row {
	if c == nil {
		c = &entity.Customer{}
	}
	return row.New(20).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   GSTIN: %s   |   PAN: %s",
				nonEmpty(c.Company, "—"),
				nonEmpty(c.GSTIN, "—"),
				nonEmpty(c.PAN, "—"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
			text.New(fmt.Sprintf("%s   |   %s   |   %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
				nonEmpty(c.Address, "—"),
			), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

// paymentRow: método y frecuencia de pago (solo facturas).
func paymentRow(doc *billing.PrintableDocument) core.Row {
	return row.New(7).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Payment method: %s   |   Frequency: %s", doc.PaymentMethod, doc.Frequency),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableItemRows: una fila por línea; el importe es cantidad × precio + GST redondeado.
func (g *MarotoPDFGenerator) tableItemRows(items pricing.Items) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.fmt.Format(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRatePercent.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.fmt.Format(it.LineTotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(s pricing.Summary) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("GST:", 7),
			grand("Total:", 13),
		),
		col.New(3).Add(
			value(g.fmt.Format(s.Subtotal), 1),
			value(g.fmt.Format(s.TaxAmount), 7),
			grand(g.fmt.Format(s.GrandTotal), 13),
		),
	)
}

// footerRows: notas, términos y QR con número, fecha y total del documento.
func (g *MarotoPDFGenerator) footerRows(doc *billing.PrintableDocument) []core.Row {
	var rows []core.Row
	section := func(title, body string) {
		if body == "" {
			return
		}
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}))),
			row.New(10).Add(col.New(12).Add(text.New(body, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}))),
		)
	}
	section("NOTES", doc.Notes)
	section("TERMS & CONDITIONS", doc.Terms)

	ref := fmt.Sprintf("%s|%s|%s", doc.Number, pricing.FormatDate(doc.IssueDate), money.Plain(doc.Summary.GrandTotal))
	rows = append(rows, row.New(30).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New("Computer generated document. No signature required.", props.Text{
			Size: 7, Top: 12, Left: 3, Color: colorGray,
		})),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
