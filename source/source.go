// Package source fetches the raw CSV text of one catalog category.
package source

import (
	"context"
	"fmt"
	"strings"

	"stcatalog/config"
)

// Source returns the CSV text published for an endpoint identifier. Any
// error means the category has no data for this run.
type Source interface {
	FetchCategoryText(ctx context.Context, endpoint string) (string, error)
}

const (
	KindGoogleSheets = "gsheets"
	KindDirectory    = "dir"
	KindWorkbook     = "excel"
)

func SupportedKinds() []string {
	return []string{KindGoogleSheets, KindDirectory, KindWorkbook}
}

// ForKind builds the source selected on the command line. input is the
// directory or workbook path for the local kinds and ignored otherwise.
func ForKind(kind string, cfg config.Config, input string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindGoogleSheets, "sheets", "google":
		sheets, err := NewGoogleSheets(GoogleSheetsConfig{
			BaseURL:           cfg.Sheets.BaseURL,
			SpreadsheetID:     cfg.Sheets.SpreadsheetID,
			UserAgent:         cfg.Sheets.UserAgent,
			Timeout:           cfg.Sheets.Timeout,
			RequestsPerSecond: cfg.Sheets.RequestsPerSecond,
		})
		if err != nil {
			return nil, err
		}
		return sheets, nil
	case KindDirectory, "csv":
		if strings.TrimSpace(input) == "" {
			return nil, fmt.Errorf("source %q requires --input directory", kind)
		}
		return NewDirectory(input), nil
	case KindWorkbook, "xlsx", "workbook":
		if strings.TrimSpace(input) == "" {
			return nil, fmt.Errorf("source %q requires --input workbook path", kind)
		}
		return NewWorkbook(input), nil
	default:
		return nil, fmt.Errorf("unsupported source: %s (supported: %s)", kind, strings.Join(SupportedKinds(), ", "))
	}
}
