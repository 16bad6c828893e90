package importer

import (
	"strings"

	"stcatalog/catalog"
	"stcatalog/money"
)

// SkipReason explains why a record produced no product.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipInactive SkipReason = "inactive"
	SkipNoName   SkipReason = "empty name"
)

var activeValues = map[string]bool{
	"si":   true,
	"true": true,
	"1":    true,
	"":     true,
}

// MapRecord builds the product for one record. Inactive rows and rows with
// an empty name are skipped; unparseable prices become nil.
func MapRecord(category catalog.Category, record Record, cols Columns) (catalog.Product, SkipReason) {
	if !IsActive(record, cols) {
		return catalog.Product{}, SkipInactive
	}

	name := record.Cell(cols.Name)
	if name == "" {
		return catalog.Product{}, SkipNoName
	}

	return catalog.Product{
		ID:        catalog.ProductID(category, name),
		Category:  category,
		Name:      name,
		PriceList: priceAt(record, cols.ListPrice),
		PriceCash: priceAt(record, cols.CashPrice),
		ModelURL:  modelURL(record.Cell(cols.ModelURL)),
	}, SkipNone
}

// IsActive applies the default-active policy: a sheet without an active
// column, a blank cell and "si"/"true"/"1" in any spelling are all active.
func IsActive(record Record, cols Columns) bool {
	if cols.Active < 0 {
		return true
	}
	return activeValues[NormalizeKey(record.Cell(cols.Active))]
}

func priceAt(record Record, col int) *float64 {
	if !record.HasCell(col) {
		return nil
	}
	return money.Parse(record.Cells[col])
}

func modelURL(value string) string {
	if strings.HasPrefix(value, "http") {
		return value
	}
	return ""
}
