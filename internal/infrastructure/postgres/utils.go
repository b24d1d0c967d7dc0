package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx. Los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// where arma cláusulas WHERE con placeholders $n numerados en orden.
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; cond usa %[1]d para el índice del argumento.
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) search(term string, columns ...string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE $%[1]d"
	}
	w.add("("+strings.Join(parts, " OR ")+")", "%"+term+"%")
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page devuelve LIMIT/OFFSET con sus argumentos agregados al final.
func (w *where) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}

// count ejecuta SELECT COUNT(*) sobre from con los filtros acumulados.
func (w *where) count(ctx context.Context, q Querier, from string) (int, error) {
	var n int
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+from+w.String(), w.args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
