// Package money formatea importes para presentación y exportación.
// El redondeo a 2 decimales se hace con decimal; x/text solo agrupa la parte entera según el idioma.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxInt64Digits dígitos que siempre caben en int64.
const maxInt64Digits = 18

// Formatter formatea importes con separadores de miles del idioma indicado.
type Formatter struct {
	printer *message.Printer
	symbol  string
	sep     string // separador de miles del idioma, para enteros fuera de int64
}

// New construye un Formatter. symbol puede ir vacío.
func New(tag language.Tag, symbol string) *Formatter {
	p := message.NewPrinter(tag)
	sep := strings.Trim(p.Sprintf("%d", 1000), "0123456789")
	return &Formatter{printer: p, symbol: symbol, sep: sep}
}

// Default formatea en inglés, sin símbolo ("1,234.50").
func Default() *Formatter {
	return New(language.English, "")
}

// Format redondea a 2 decimales y agrupa la parte entera. Ej: 1234.5 → "1,234.50".
func (f *Formatter) Format(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var grouped string
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil && len(intPart) <= maxInt64Digits {
		grouped = f.printer.Sprintf("%d", n)
	} else {
		grouped = groupThousands(intPart, f.sep)
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(f.symbol)
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Plain devuelve el importe con 2 decimales sin agrupar (CSV, XML).
func Plain(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

func groupThousands(digits, sep string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
