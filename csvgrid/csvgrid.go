// Package csvgrid converts spreadsheet CSV exports into a grid of string
// cells and back. It knows nothing about headers or column meaning.
package csvgrid

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Grid is an ordered list of rows. Rows may have different lengths.
type Grid [][]string

// Parse splits text into rows and cells. Fields are separated by ',' and
// records by "\n", "\r\n" or a lone '\r'. Quoted fields keep separators and
// newlines literally and use "" for an embedded quote. An empty leading row
// (a single empty cell) is dropped, so empty input yields no rows.
func Parse(text string) Grid {
	p := parser{rows: make(Grid, 0, 64)}

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if p.inQuotes {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					p.cell.WriteByte('"')
					i++
					continue
				}
				p.inQuotes = false
				continue
			}
			p.cell.WriteByte(ch)
			continue
		}

		switch ch {
		case '"':
			p.inQuotes = true
			p.pending = true
		case ',':
			p.pushCell()
		case '\n':
			p.pushCell()
			p.pushRow()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			p.pushCell()
			p.pushRow()
		default:
			p.cell.WriteByte(ch)
			p.pending = true
		}
	}

	if p.pending || len(p.row) > 0 {
		p.pushCell()
		p.pushRow()
	}

	return p.rows
}

type parser struct {
	rows     Grid
	row      []string
	cell     strings.Builder
	inQuotes bool
	// pending is set once the current cell has seen any input, including an
	// opening quote of an empty quoted field.
	pending bool
}

func (p *parser) pushCell() {
	p.row = append(p.row, p.cell.String())
	p.cell.Reset()
	p.pending = false
}

func (p *parser) pushRow() {
	if len(p.rows) == 0 && len(p.row) == 1 && p.row[0] == "" {
		p.row = nil
		return
	}
	p.rows = append(p.rows, p.row)
	p.row = nil
}

// Encode serializes grid as CSV with ',' and "\n", quoting fields that
// contain separators, quotes or a leading space.
func Encode(grid Grid) (string, error) {
	var out strings.Builder
	writer := csv.NewWriter(&out)
	for i, row := range grid {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return out.String(), nil
}
