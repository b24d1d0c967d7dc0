package migrations

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_EmbebidasConUpYDown(t *testing.T) {
	src, err := iofs.New(files, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := src.ReadUp(first)
	require.NoError(t, err)
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	_ = up.Close()

	sql := string(body)
	for _, table := range []string{"customers", "products", "quotations", "quotation_items", "invoices", "invoice_items", "users", "team_invitations"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" "), "falta tabla %s", table)
	}
	assert.Contains(t, sql, "quotation_number_seq")
	assert.Contains(t, sql, "invoice_number_seq")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	_ = down.Close()
}
