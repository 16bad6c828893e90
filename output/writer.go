package output

import (
	"fmt"
	"strconv"
	"strings"

	"stcatalog/catalog"
)

type Writer interface {
	Write(path string, products []catalog.Product) error
}

var headers = []string{"ID", "Category", "Name", "PriceList", "PriceCash", "ModelURL"}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func formatPrice(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
