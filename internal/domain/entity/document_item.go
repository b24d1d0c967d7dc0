package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// DocumentItem línea persistida de una cotización o factura.
// LineTotal se guarda redondeado solo para listados; los totales del documento se calculan desde las líneas.
type DocumentItem struct {
	ID             string
	DocumentID     string
	Position       int
	ProductID      string // vacío si la línea no viene del catálogo
	Name           string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
	LineTotal      decimal.Decimal
}

// NewDocumentItems convierte las líneas del motor de precios en líneas persistibles.
func NewDocumentItems(documentID string, items pricing.Items) []DocumentItem {
	out := make([]DocumentItem, 0, len(items))
	for i, it := range items {
		out = append(out, DocumentItem{
			DocumentID:     documentID,
			Position:       i,
			ProductID:      it.ProductRef,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TaxRatePercent: it.TaxRatePercent,
			LineTotal:      it.LineTotal(),
		})
	}
	return out
}

// PricingItems reconstruye la lista del motor de precios en el orden de Position.
func PricingItems(items []DocumentItem) pricing.Items {
	out := make(pricing.Items, len(items))
	for i, it := range items {
		out[i] = pricing.LineItem{
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TaxRatePercent: it.TaxRatePercent,
			ProductRef:     it.ProductID,
		}
	}
	return out
}
