// Package pricing calcula los totales de cotizaciones y facturas a partir de sus líneas
// y mantiene la fecha de vencimiento sincronizada con la fecha de emisión.
//
// Todas las operaciones son puras: reciben una lista y devuelven una nueva, sin modificar
// la recibida. No hay I/O ni estado compartido; se pueden invocar en cada cambio del formulario.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultQuantity cantidad de una línea nueva.
const DefaultQuantity int64 = 1

// DefaultTaxRatePercent GST por defecto de una línea nueva (18%).
var DefaultTaxRatePercent = decimal.NewFromInt(18)

// LineItem una línea de cotización o factura.
// TaxRatePercent es un porcentaje en [0, 100], no una fracción.
type LineItem struct {
	Name           string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
	ProductRef     string // ID del producto de catálogo del que se copiaron los valores; vacío si es libre
}

// NewLineItem devuelve la línea por defecto {"" , 1, 0, 18%}.
func NewLineItem() LineItem {
	return LineItem{
		Quantity:       DefaultQuantity,
		UnitPrice:      decimal.Zero,
		TaxRatePercent: DefaultTaxRatePercent,
	}
}

// Amount cantidad × precio unitario, sin impuesto ni redondeo.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(li.Quantity).Mul(li.UnitPrice)
}

// Tax impuesto de la línea sin redondear: amount × tasa / 100.
func (li LineItem) Tax() decimal.Decimal {
	return li.Amount().Mul(li.TaxRatePercent).Shift(-2)
}

// LineTotal total de la línea con impuesto, redondeado a 2 decimales para mostrar.
// No se usa como entrada del resumen.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Amount().Add(li.Tax()).Round(2)
}

// CatalogRecord copia de un producto del catálogo usada para llenar una línea.
type CatalogRecord struct {
	ID             string
	Name           string
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
}

// Field campo editable de una línea.
type Field uint8

const (
	FieldName Field = iota + 1
	FieldQuantity
	FieldUnitPrice
	FieldTaxRate
)

var fieldNames = [...]string{
	FieldName:      "name",
	FieldQuantity:  "quantity",
	FieldUnitPrice: "unit_price",
	FieldTaxRate:   "tax_rate",
}

// String nombre del campo tal como llega desde el formulario.
func (f Field) String() string {
	if f == 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField convierte el nombre de un campo del formulario.
func ParseField(s string) (Field, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range fieldNames {
		if i > 0 && name == s {
			return Field(i), true
		}
	}
	return 0, false
}

// parseDecimal convierte texto de un input numérico; lo no numérico vale 0.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseQuantity conserva solo la parte entera.
func parseQuantity(s string) int64 {
	return parseDecimal(s).IntPart()
}
