package importer

import (
	"strings"

	"stcatalog/csvgrid"
)

// Record is one data row of a category sheet.
type Record struct {
	RowNumber int
	Cells     []string
}

// Cell returns the trimmed value at col, or "" when col is unresolved or
// past the end of a short row.
func (r Record) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[col])
}

// HasCell reports whether the row physically contains col.
func (r Record) HasCell(col int) bool {
	return col >= 0 && col < len(r.Cells)
}

// SplitGrid separates the header row from the data records. Row numbers are
// 1-based sheet rows, so the first record is row 2.
func SplitGrid(grid csvgrid.Grid) ([]string, []Record) {
	if len(grid) == 0 {
		return nil, nil
	}
	records := make([]Record, 0, len(grid)-1)
	for i, row := range grid[1:] {
		records = append(records, Record{RowNumber: i + 2, Cells: row})
	}
	return grid[0], records
}
