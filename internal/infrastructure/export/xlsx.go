package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/crm-api/internal/application/billing"
)

var _ billing.TableWriter = (*XLSXWriter)(nil)

// numFmtThousands formato incorporado de Excel "#,##0.00".
const numFmtThousands = 4

// XLSXWriter escribe listados como hoja de cálculo. Las celdas numéricas se guardan como número.
type XLSXWriter struct{}

// NewXLSXWriter construye el writer.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

// ContentType tipo MIME.
func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión de archivo.
func (XLSXWriter) Extension() string { return "xlsx" }

// WriteTable escribe una hoja con el nombre de la tabla, encabezados en negrita y filas.
func (XLSXWriter) WriteTable(w io.Writer, table *billing.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := table.Name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: nombre de hoja: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}

	headers := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("xlsx: encabezados: %w", err)
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
			return fmt.Errorf("xlsx: estilo encabezados: %w", err)
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("xlsx: celda: %w", err)
			}
			if d, err := decimal.NewFromString(value); err == nil {
				if err := f.SetCellFloat(sheet, cell, d.InexactFloat64(), 2, 64); err != nil {
					return fmt.Errorf("xlsx: celda %s: %w", cell, err)
				}
				if err := f.SetCellStyle(sheet, cell, cell, amount); err != nil {
					return fmt.Errorf("xlsx: estilo %s: %w", cell, err)
				}
				continue
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}
