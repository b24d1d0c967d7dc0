package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

// Product representa un producto o servicio del catálogo.
// Las líneas de documentos copian sus valores al seleccionarlo; editarlo no reescribe documentos.
type Product struct {
	ID             string
	Name           string
	Description    string
	Category       string
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal // GST en porcentaje: 0, 5, 12, 18, 28
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CatalogRecord copia de los valores que una línea toma del producto.
func (p *Product) CatalogRecord() pricing.CatalogRecord {
	return pricing.CatalogRecord{
		ID:             p.ID,
		Name:           p.Name,
		UnitPrice:      p.UnitPrice,
		TaxRatePercent: p.TaxRatePercent,
	}
}
