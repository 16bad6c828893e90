package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"stcatalog/catalog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, products []catalog.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, product := range products {
		row := []string{
			product.ID,
			string(product.Category),
			product.Name,
			formatPrice(product.PriceList),
			formatPrice(product.PriceCash),
			product.ModelURL,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
