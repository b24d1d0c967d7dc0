package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/crm-api/internal/application/dto"
)

// columnas esperadas del CSV de catálogo (encabezado obligatorio, orden libre)
var requiredColumns = []string{"name", "unit_price", "gst_percentage"}

// readCatalog lee productos desde CSV. charset "latin1" decodifica ISO-8859-1 (exportaciones de Excel).
func readCatalog(r io.Reader, charset string) ([]dto.CreateProductRequest, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if get(rec, "name") == "" {
			continue
		}
		price, err := decimal.NewFromString(get(rec, "unit_price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: unit_price inválido: %w", line, err)
		}
		gst, err := decimal.NewFromString(get(rec, "gst_percentage"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: gst_percentage inválido: %w", line, err)
		}
		p := dto.CreateProductRequest{
			Name:          get(rec, "name"),
			Description:   get(rec, "description"),
			Category:      get(rec, "category"),
			UnitPrice:     price,
			GSTPercentage: gst,
		}
		if v := strings.ToLower(get(rec, "active")); v != "" {
			active := v == "true" || v == "1" || v == "si" || v == "sí" || v == "yes"
			p.Active = &active
		}
		out = append(out, p)
	}
	return out, nil
}
