package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"stcatalog/catalog"
)

type ExcelWriter struct{}

// Write stores products on a single sheet. Prices are numeric cells; a
// missing price leaves its cell empty.
func (w *ExcelWriter) Write(path string, products []catalog.Product) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, product := range products {
		row := i + 2
		values := []any{
			product.ID,
			string(product.Category),
			product.Name,
			priceCell(product.PriceList),
			priceCell(product.PriceCash),
			product.ModelURL,
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func priceCell(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
