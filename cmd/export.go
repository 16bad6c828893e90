package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stcatalog/output"
)

var (
	exportFormat     string
	exportOutput     string
	exportSource     string
	exportInput      string
	exportCategories []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Ingest the catalog and write a CSV/Excel snapshot",
	Long: `Ingest every configured category and write the normalized products to a file.

Columns: ID, Category, Name, PriceList, PriceCash, ModelURL. Missing prices are left empty.
Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export the live catalog to CSV
  stcatalog export --output ./catalog.csv

  # Export to Excel
  stcatalog export --output ./catalog.xlsx

  # Force Excel format independent of extension
  stcatalog export --format excel --output ./catalog.out

  # Convert a local CSV mirror into a workbook
  stcatalog export --source dir --input ./mirror --output ./catalog.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		p, err := newPipeline(exportSource, exportInput, exportCategories, nil)
		if err != nil {
			return err
		}
		defer p.Close()

		result, err := p.ingester.Run(cmd.Context())
		if err != nil {
			return err
		}
		printFailures(os.Stderr, result)

		if err := writer.Write(exportOutput, result.Products); err != nil {
			return err
		}

		fmt.Printf("Export completed. Products: %d, Failed categories: %d, Format: %s, File: %s\n",
			len(result.Products), result.CategoriesFailed, format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportSource, "source", "s", "gsheets", sourceFlagUsage())
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Directory (dir source) or workbook path (excel source)")
	exportCmd.Flags().StringArrayVarP(&exportCategories, "category", "c", nil, "Only export this category (repeatable)")

	_ = exportCmd.MarkFlagRequired("output")
}
