package pricing

import "github.com/shopspring/decimal"

// Summary totales derivados de las líneas. Los valores no están redondeados.
type Summary struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeSummary suma las líneas sin redondeos intermedios.
func ComputeSummary(list Items) Summary {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range list {
		subtotal = subtotal.Add(item.Amount())
		tax = tax.Add(item.Tax())
	}
	return Summary{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// Rounded redondea cada total a 2 decimales (persistencia).
// GrandTotal se redondea desde el valor exacto, no desde la suma de los redondeados.
func (s Summary) Rounded() Summary {
	return Summary{
		Subtotal:   s.Subtotal.Round(2),
		TaxAmount:  s.TaxAmount.Round(2),
		GrandTotal: s.GrandTotal.Round(2),
	}
}

// DisplaySummary totales listos para mostrar ("250.00").
type DisplaySummary struct {
	Subtotal   string
	TaxAmount  string
	GrandTotal string
}

// Display formatea los totales con 2 decimales.
func (s Summary) Display() DisplaySummary {
	r := s.Rounded()
	return DisplaySummary{
		Subtotal:   r.Subtotal.StringFixed(2),
		TaxAmount:  r.TaxAmount.StringFixed(2),
		GrandTotal: r.GrandTotal.StringFixed(2),
	}
}
