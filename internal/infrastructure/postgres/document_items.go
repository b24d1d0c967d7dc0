package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// Tablas de líneas: quotation_items(quotation_id) e invoice_items(invoice_id).
type itemTable struct {
	name string
	fk   string
}

var (
	quotationItems = itemTable{name: "quotation_items", fk: "quotation_id"}
	invoiceItems   = itemTable{name: "invoice_items", fk: "invoice_id"}
)

// replace borra las líneas del documento e inserta las nuevas en un solo batch.
func (t itemTable) replace(ctx context.Context, q Querier, documentID string, items []entity.DocumentItem) error {
	b := &pgx.Batch{}
	b.Queue(`DELETE FROM `+t.name+` WHERE `+t.fk+` = $1`, documentID)
	insert := `
		INSERT INTO ` + t.name + ` (id, ` + t.fk + `, position, product_id, item_name, quantity, unit_price, gst_percentage, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.DocumentID = documentID
		b.Queue(insert,
			it.ID, documentID, it.Position, nullIfEmpty(it.ProductID), it.Name,
			it.Quantity, it.UnitPrice, it.TaxRatePercent, it.LineTotal,
		)
	}
	br := q.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("replace %s: %w", t.name, err)
		}
	}
	return br.Close()
}

// list devuelve las líneas del documento en orden de posición.
func (t itemTable) list(ctx context.Context, q Querier, documentID string) ([]entity.DocumentItem, error) {
	query := `
		SELECT id, ` + t.fk + `, position, COALESCE(product_id::text, ''), item_name, quantity, unit_price, gst_percentage, line_total
		FROM ` + t.name + ` WHERE ` + t.fk + ` = $1 ORDER BY position`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	list := []entity.DocumentItem{}
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(
			&it.ID, &it.DocumentID, &it.Position, &it.ProductID, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.TaxRatePercent, &it.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// nextNumber toma el siguiente valor de la secuencia y lo formatea como PREFIJO-00001.
func nextNumber(ctx context.Context, q Querier, sequence, prefix string) (string, error) {
	var n int64
	if err := q.QueryRow(ctx, `SELECT nextval('`+sequence+`')`).Scan(&n); err != nil {
		return "", fmt.Errorf("nextval %s: %w", sequence, err)
	}
	return fmt.Sprintf("%s-%05d", prefix, n), nil
}
