package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(name string, qty int64, price, rate string) pricing.LineItem {
	return pricing.LineItem{Name: name, Quantity: qty, UnitPrice: dec(price), TaxRatePercent: dec(rate)}
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), "esperado %s, obtenido %s", expected, got.String())
}

func assertDefaultItem(t *testing.T, li pricing.LineItem) {
	t.Helper()
	assert.Equal(t, "", li.Name)
	assert.Equal(t, int64(1), li.Quantity)
	assertDecimal(t, "0", li.UnitPrice)
	assertDecimal(t, "18", li.TaxRatePercent)
	assert.Empty(t, li.ProductRef)
}

func TestNewItems_UnaLineaPorDefecto(t *testing.T) {
	list := pricing.NewItems()
	require.Len(t, list, 1)
	assertDefaultItem(t, list[0])
}

func TestAddItem_AgregaLineaPorDefectoAlFinal(t *testing.T) {
	list := pricing.Items{item("A", 2, "100", "10")}

	out := pricing.AddItem(list)

	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Name)
	assertDefaultItem(t, out[1])
	assert.Len(t, list, 1, "la lista original no se modifica")
}

func TestAddItem_NoCompartePosicionesConLaOriginal(t *testing.T) {
	list := make(pricing.Items, 1, 4)
	list[0] = item("A", 1, "1", "0")

	out := pricing.AddItem(list)
	out[0].Name = "cambiado"

	assert.Equal(t, "A", list[0].Name)
}

func TestRemoveItem_QuitaLaLineaIndicada(t *testing.T) {
	list := pricing.Items{item("A", 1, "1", "0"), item("B", 1, "2", "0"), item("C", 1, "3", "0")}

	out := pricing.RemoveItem(list, 1)

	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Name)
	assert.Equal(t, "C", out[1].Name)
	assert.Len(t, list, 3)
	assert.Equal(t, "B", list[1].Name)
}

func TestRemoveItem_NuncaQuitaLaUltimaLinea(t *testing.T) {
	list := pricing.Items{item("Unica", 3, "10", "5")}

	out := pricing.RemoveItem(list, 0)

	require.Len(t, out, 1)
	assert.Equal(t, list[0], out[0])
}

func TestRemoveItem_IndiceFueraDeRango(t *testing.T) {
	list := pricing.Items{item("A", 1, "1", "0"), item("B", 1, "2", "0")}

	for _, idx := range []int{-1, 2, 99} {
		out := pricing.RemoveItem(list, idx)
		assert.Equal(t, list, out, "índice %d", idx)
	}
}

func TestRemoveItem_SecuenciaNuncaVacia(t *testing.T) {
	list := pricing.NewItems()
	for i := 0; i < 5; i++ {
		list = pricing.AddItem(list)
	}
	for i := 0; i < 20; i++ {
		list = pricing.RemoveItem(list, 0)
		assert.GreaterOrEqual(t, len(list), 1)
	}
	assert.Len(t, list, 1)
}

func TestUpdateItem_ConvierteCamposNumericos(t *testing.T) {
	list := pricing.NewItems()

	list = pricing.UpdateItem(list, 0, pricing.FieldName, "Consultoría")
	list = pricing.UpdateItem(list, 0, pricing.FieldQuantity, "3")
	list = pricing.UpdateItem(list, 0, pricing.FieldUnitPrice, "99.95")
	list = pricing.UpdateItem(list, 0, pricing.FieldTaxRate, "12")

	assert.Equal(t, "Consultoría", list[0].Name)
	assert.Equal(t, int64(3), list[0].Quantity)
	assertDecimal(t, "99.95", list[0].UnitPrice)
	assertDecimal(t, "12", list[0].TaxRatePercent)
}

func TestUpdateItem_TextoNoNumericoQuedaEnCero(t *testing.T) {
	list := pricing.Items{item("A", 4, "10", "18")}

	list = pricing.UpdateItem(list, 0, pricing.FieldQuantity, "abc")
	list = pricing.UpdateItem(list, 0, pricing.FieldUnitPrice, "")
	list = pricing.UpdateItem(list, 0, pricing.FieldTaxRate, "x1")

	assert.Equal(t, int64(0), list[0].Quantity)
	assertDecimal(t, "0", list[0].UnitPrice)
	assertDecimal(t, "0", list[0].TaxRatePercent)
}

func TestUpdateItem_CantidadConservaParteEntera(t *testing.T) {
	list := pricing.UpdateItem(pricing.NewItems(), 0, pricing.FieldQuantity, "2.7")
	assert.Equal(t, int64(2), list[0].Quantity)
}

func TestUpdateItem_NoValidaRangos(t *testing.T) {
	list := pricing.UpdateItem(pricing.NewItems(), 0, pricing.FieldQuantity, "-5")
	list = pricing.UpdateItem(list, 0, pricing.FieldTaxRate, "150")

	assert.Equal(t, int64(-5), list[0].Quantity)
	assertDecimal(t, "150", list[0].TaxRatePercent)
}

func TestUpdateItem_SoloAfectaLaLineaIndicada(t *testing.T) {
	list := pricing.Items{item("A", 1, "1", "0"), item("B", 2, "2", "0")}

	out := pricing.UpdateItem(list, 1, pricing.FieldName, "B2")

	assert.Equal(t, "A", out[0].Name)
	assert.Equal(t, "B2", out[1].Name)
	assert.Equal(t, "B", list[1].Name, "la lista original no se modifica")
}

func TestUpdateItem_IndiceOCampoInvalido(t *testing.T) {
	list := pricing.Items{item("A", 1, "1", "0")}

	assert.Equal(t, list, pricing.UpdateItem(list, 3, pricing.FieldName, "X"))
	assert.Equal(t, list, pricing.UpdateItem(list, 0, pricing.Field(0), "X"))
}

func TestApplyProductSelection_CopiaValoresDelCatalogo(t *testing.T) {
	list := pricing.Items{item("", 4, "0", "18")}
	rec := pricing.CatalogRecord{ID: "p-1", Name: "Widget", UnitPrice: dec("250"), TaxRatePercent: dec("5")}

	out := pricing.ApplyProductSelection(list, 0, rec)

	assert.Equal(t, "Widget", out[0].Name)
	assertDecimal(t, "250", out[0].UnitPrice)
	assertDecimal(t, "5", out[0].TaxRatePercent)
	assert.Equal(t, "p-1", out[0].ProductRef)
	assert.Equal(t, int64(4), out[0].Quantity, "la cantidad no cambia")
}

func TestApplyProductSelection_CambiosDelCatalogoNoAfectanLaLinea(t *testing.T) {
	rec := pricing.CatalogRecord{ID: "p-1", Name: "Widget", UnitPrice: dec("250"), TaxRatePercent: dec("5")}
	out := pricing.ApplyProductSelection(pricing.NewItems(), 0, rec)

	rec.Name = "Widget v2"
	rec.UnitPrice = dec("300")

	assert.Equal(t, "Widget", out[0].Name)
	assertDecimal(t, "250", out[0].UnitPrice)
}

func TestApplyProductSelection_IndiceFueraDeRango(t *testing.T) {
	list := pricing.NewItems()
	out := pricing.ApplyProductSelection(list, 5, pricing.CatalogRecord{Name: "X"})
	assert.Equal(t, list, out)
}

func TestParseField(t *testing.T) {
	cases := map[string]pricing.Field{
		"name":       pricing.FieldName,
		"quantity":   pricing.FieldQuantity,
		"unit_price": pricing.FieldUnitPrice,
		" TAX_RATE ": pricing.FieldTaxRate,
	}
	for in, want := range cases {
		got, ok := pricing.ParseField(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := pricing.ParseField("discount")
	assert.False(t, ok)
	assert.Equal(t, "unknown", pricing.Field(0).String())
	assert.Equal(t, "unit_price", pricing.FieldUnitPrice.String())
}

func TestLineItem_LineTotalRedondeado(t *testing.T) {
	li := item("A", 3, "33.33", "18")
	// 99.99 + 17.9982 = 117.9882
	assertDecimal(t, "117.99", li.LineTotal())
	assertDecimal(t, "17.9982", li.Tax())
}
