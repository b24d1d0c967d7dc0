package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/crm-api/internal/application/billing"
)

var _ billing.TableWriter = (*CSVWriter)(nil)

// CSVWriter escribe listados como CSV (RFC 4180) con fila de encabezados.
type CSVWriter struct{}

// NewCSVWriter construye el writer.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

// ContentType tipo MIME.
func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension extensión de archivo.
func (CSVWriter) Extension() string { return "csv" }

// WriteTable escribe encabezados y filas.
func (CSVWriter) WriteTable(w io.Writer, table *billing.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("csv: encabezados: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("csv: filas: %w", err)
	}
	return nil
}
