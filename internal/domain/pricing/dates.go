package pricing

import "time"

// ValidityDays días entre la fecha de emisión y la de validez/vencimiento.
const ValidityDays = 30

// DateLayout formato de fecha de los documentos (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// SyncExpiryDate fecha de emisión + 30 días calendario. El desborde de día/mes/año
// lo normaliza time (2024-01-31 → 2024-03-01).
func SyncExpiryDate(issueDate time.Time) time.Time {
	return issueDate.AddDate(0, 0, ValidityDays)
}

// DateOf descarta la hora y devuelve la fecha a medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
