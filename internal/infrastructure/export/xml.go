// Package export implementa los formatos de exportación de documentos y listados: XML, CSV y XLSX.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/crm-api/internal/application/billing"
	"github.com/jhoicas/crm-api/internal/domain/pricing"
	"github.com/jhoicas/crm-api/pkg/money"
)

var _ billing.DocumentXMLWriter = (*XMLWriter)(nil)

// XMLWriter serializa cotizaciones y facturas con etree. Importes con 2 decimales, sin agrupar.
type XMLWriter struct{}

// NewXMLWriter construye el writer.
func NewXMLWriter() *XMLWriter { return &XMLWriter{} }

// WriteDocumentXML escribe el documento en w.
func (x *XMLWriter) WriteDocumentXML(w io.Writer, doc *billing.PrintableDocument) error {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement(doc.Kind.Title())
	root.CreateAttr("number", doc.Number)
	root.CreateAttr("status", doc.Status)

	root.CreateElement("IssueDate").SetText(pricing.FormatDate(doc.IssueDate))
	if doc.Kind == billing.KindInvoice {
		root.CreateElement("DueDate").SetText(pricing.FormatDate(doc.DueDate))
		root.CreateElement("PaymentMethod").SetText(doc.PaymentMethod)
		root.CreateElement("Frequency").SetText(doc.Frequency)
	} else {
		root.CreateElement("ValidUntil").SetText(pricing.FormatDate(doc.DueDate))
	}

	if c := doc.Customer; c != nil {
		cust := root.CreateElement("Customer")
		if c.ID != "" {
			cust.CreateAttr("id", c.ID)
		}
		optional(cust, "Name", c.Name)
		optional(cust, "Company", c.Company)
		optional(cust, "GSTIN", c.GSTIN)
		optional(cust, "PAN", c.PAN)
		optional(cust, "Email", c.Email)
		optional(cust, "Phone", c.Phone)
		optional(cust, "Address", c.Address)
	}

	items := root.CreateElement("Items")
	for i, it := range doc.Items {
		el := items.CreateElement("Item")
		el.CreateAttr("position", strconv.Itoa(i+1))
		if it.ProductRef != "" {
			el.CreateAttr("productId", it.ProductRef)
		}
		el.CreateElement("Name").SetText(it.Name)
		el.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		el.CreateElement("UnitPrice").SetText(money.Plain(it.UnitPrice))
		el.CreateElement("GSTPercentage").SetText(it.TaxRatePercent.String())
		el.CreateElement("LineTotal").SetText(money.Plain(it.LineTotal()))
	}

	summary := root.CreateElement("Summary")
	summary.CreateElement("Subtotal").SetText(money.Plain(doc.Summary.Subtotal))
	summary.CreateElement("TaxAmount").SetText(money.Plain(doc.Summary.TaxAmount))
	summary.CreateElement("GrandTotal").SetText(money.Plain(doc.Summary.GrandTotal))

	optional(root, "Notes", doc.Notes)
	optional(root, "Terms", doc.Terms)

	out.Indent(2)
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("xml: escribir documento: %w", err)
	}
	return nil
}

func optional(parent *etree.Element, tag, value string) {
	if value != "" {
		parent.CreateElement(tag).SetText(value)
	}
}
