package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"stcatalog/csvgrid"
)

// Workbook reads categories from the sheets of a local .xlsx copy of the
// catalog spreadsheet. The endpoint identifier is the sheet name.
type Workbook struct {
	path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) FetchCategoryText(ctx context.Context, endpoint string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := excelize.OpenFile(w.path)
	if err != nil {
		return "", fmt.Errorf("open excel file %s: %w", w.path, err)
	}
	defer file.Close()

	if index, err := file.GetSheetIndex(endpoint); err != nil || index < 0 {
		return "", fmt.Errorf("sheet %q not found in %s", endpoint, w.path)
	}

	rows, err := file.GetRows(endpoint)
	if err != nil {
		return "", fmt.Errorf("read rows from sheet %s: %w", endpoint, err)
	}

	text, err := csvgrid.Encode(rows)
	if err != nil {
		return "", fmt.Errorf("encode sheet %s: %w", endpoint, err)
	}
	return text, nil
}
