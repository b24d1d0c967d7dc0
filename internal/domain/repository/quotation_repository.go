package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// QuotationFilter criterios de listado de cotizaciones.
type QuotationFilter struct {
	Status     *entity.QuotationStatus
	CustomerID string
	Search     string // número de cotización o nombre del cliente
	Limit      int
	Offset     int
}

// QuotationRepository define el puerto de persistencia para Quotation y sus líneas.
// Cabecera y líneas se escriben dentro de la misma transacción (ver TxRunner).
type QuotationRepository interface {
	// NextNumber reserva el siguiente consecutivo (QT-00001).
	NextNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, q *entity.Quotation) error
	// Update actualiza la cabecera y los totales; las líneas se reemplazan con ReplaceItems.
	Update(ctx context.Context, q *entity.Quotation) error
	UpdateStatus(ctx context.Context, id string, status entity.QuotationStatus) error
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	List(ctx context.Context, filter QuotationFilter) ([]*entity.Quotation, int, error)
	Delete(ctx context.Context, id string) error
	// ReplaceItems borra todas las líneas de la cotización e inserta las recibidas.
	ReplaceItems(ctx context.Context, quotationID string, items []entity.DocumentItem) error
	GetItems(ctx context.Context, quotationID string) ([]entity.DocumentItem, error)
}
