package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullColumns = Columns{Name: 0, ListPrice: 1, CashPrice: 2, Active: 3, ModelURL: 4}

func TestMapRecord_BuildsProduct(t *testing.T) {
	t.Parallel()

	record := Record{RowNumber: 2, Cells: []string{"  Flip 6 ", "$ 93.000,50", "85.000", "SI", " https://example.com/flip6 "}}

	product, skip := MapRecord("JBL", record, fullColumns)
	require.Equal(t, SkipNone, skip)

	assert.Equal(t, "JBL:Flip 6", product.ID)
	assert.Equal(t, "Flip 6", product.Name)
	require.NotNil(t, product.PriceList)
	require.NotNil(t, product.PriceCash)
	assert.InDelta(t, 93000.5, *product.PriceList, 1e-9)
	assert.InDelta(t, 85000, *product.PriceCash, 1e-9)
	assert.Equal(t, "https://example.com/flip6", product.ModelURL)
}

func TestMapRecord_ActiveFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  SkipReason
	}{
		{value: "", want: SkipNone},
		{value: "SI", want: SkipNone},
		{value: "Sí", want: SkipNone},
		{value: "true", want: SkipNone},
		{value: "1", want: SkipNone},
		{value: " si. ", want: SkipNone},
		{value: "NO", want: SkipInactive},
		{value: "false", want: SkipInactive},
		{value: "0", want: SkipInactive},
		{value: "agotado", want: SkipInactive},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()
			record := Record{Cells: []string{"Watch", "", "", tc.value, ""}}
			_, skip := MapRecord("RELOJ SMART", record, fullColumns)
			assert.Equal(t, tc.want, skip)
		})
	}
}

func TestMapRecord_MissingActiveColumnDefaultsToActive(t *testing.T) {
	t.Parallel()

	cols := Columns{Name: 0, ListPrice: -1, CashPrice: -1, Active: -1, ModelURL: -1}
	product, skip := MapRecord("OTROS", Record{Cells: []string{"Cable"}}, cols)

	require.Equal(t, SkipNone, skip)
	assert.Nil(t, product.PriceList)
	assert.Nil(t, product.PriceCash)
	assert.Empty(t, product.ModelURL)
}

func TestMapRecord_ShortRowTreatsMissingCellsAsBlank(t *testing.T) {
	t.Parallel()

	product, skip := MapRecord("APPLE", Record{Cells: []string{"iPhone 15"}}, fullColumns)

	require.Equal(t, SkipNone, skip, "missing active cell counts as blank, so active")
	assert.Nil(t, product.PriceList)
	assert.Nil(t, product.PriceCash)
}

func TestMapRecord_EmptyNameIsSkipped(t *testing.T) {
	t.Parallel()

	_, skip := MapRecord("APPLE", Record{Cells: []string{"   ", "1.000", "", "SI", ""}}, fullColumns)
	assert.Equal(t, SkipNoName, skip)

	_, skip = MapRecord("APPLE", Record{Cells: []string{"x"}}, Columns{Name: -1, ListPrice: -1, CashPrice: -1, Active: -1, ModelURL: -1})
	assert.Equal(t, SkipNoName, skip)
}

func TestMapRecord_ModelURLRequiresHTTPPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  string
	}{
		{value: "ftp://not-http", want: ""},
		{value: "www.example.com", want: ""},
		{value: "", want: ""},
		{value: "http://example.com/a", want: "http://example.com/a"},
		{value: "https://example.com/b", want: "https://example.com/b"},
	}

	for _, tc := range tests {
		record := Record{Cells: []string{"Vape", "", "", "", tc.value}}
		product, skip := MapRecord("VAPER", record, fullColumns)
		require.Equal(t, SkipNone, skip)
		assert.Equal(t, tc.want, product.ModelURL, "value %q", tc.value)
	}
}

func TestMapRecord_UnparseablePriceIsNil(t *testing.T) {
	t.Parallel()

	product, skip := MapRecord("XIAOMI", Record{Cells: []string{"Redmi", "consultar", "", "", ""}}, fullColumns)
	require.Equal(t, SkipNone, skip)
	assert.Nil(t, product.PriceList)
	assert.Nil(t, product.PriceCash)
}

func TestSplitGrid(t *testing.T) {
	t.Parallel()

	header, records := SplitGrid([][]string{{"PRODUCTO"}, {"a"}, {"b"}})
	assert.Equal(t, []string{"PRODUCTO"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].RowNumber)
	assert.Equal(t, 3, records[1].RowNumber)

	header, records = SplitGrid(nil)
	assert.Nil(t, header)
	assert.Empty(t, records)
}
