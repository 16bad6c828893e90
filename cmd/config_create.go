package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stcatalog/catalog"
	"stcatalog/config"
)

var (
	createSpreadsheetID string
	createCategories    []string
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same template used by "config edit".

The template can be seeded with a spreadsheet ID and a category table; each
--category flag adds one NAME=ENDPOINT entry in display order. Without
--category the published default table is used. The seeded file is validated
before it is written.

If a configuration file is already in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.stcatalog.yaml
  stcatalog config create

  # Seed another spreadsheet with two tabs
  stcatalog config create --spreadsheet-id 1AbC... --category "JBL=0" --category "RELOJ SMART=71516678"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := parseCategoryFlags(createCategories)
		if err != nil {
			return err
		}
		return createConfigFile(os.Stdout, createSpreadsheetID, sources)
	},
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVar(&createSpreadsheetID, "spreadsheet-id", "", "Spreadsheet ID to seed (default: the published catalog)")
	configCreateCmd.Flags().StringArrayVar(&createCategories, "category", nil, "Category as NAME=ENDPOINT (repeatable, keeps order)")
}

// parseCategoryFlags reads NAME=ENDPOINT pairs. The last '=' separates the
// endpoint, so names may contain '='.
func parseCategoryFlags(values []string) ([]catalog.CategorySource, error) {
	sources := make([]catalog.CategorySource, 0, len(values))
	for _, value := range values {
		sep := strings.LastIndex(value, "=")
		if sep < 0 {
			return nil, fmt.Errorf("invalid --category %q (expected NAME=ENDPOINT)", value)
		}
		name := strings.TrimSpace(value[:sep])
		endpoint := strings.TrimSpace(value[sep+1:])
		if name == "" || endpoint == "" {
			return nil, fmt.Errorf("invalid --category %q (name and endpoint are required)", value)
		}
		sources = append(sources, catalog.CategorySource{Category: catalog.Category(name), Endpoint: endpoint})
	}
	return sources, nil
}

// seedTemplate renders and validates the config template. Empty values fall
// back to the published spreadsheet and its default table.
func seedTemplate(spreadsheetID string, sources []catalog.CategorySource) (string, *config.Config, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		spreadsheetID = config.DefaultSpreadsheetID
	}
	if len(sources) == 0 {
		sources = catalog.DefaultSources()
	}

	content := config.TemplateYAML(strings.TrimSpace(spreadsheetID), sources)
	cfg, err := config.ValidateYAMLContent([]byte(content))
	if err != nil {
		return "", nil, fmt.Errorf("seeded config is invalid: %w", err)
	}
	return content, cfg, nil
}

func createConfigFile(out io.Writer, spreadsheetID string, sources []catalog.CategorySource) error {
	configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	content, cfg, err := seedTemplate(spreadsheetID, sources)
	if err != nil {
		return err
	}

	created, err := writeConfigIfMissing(configPath, content)
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintf(out, "Config file already exists at: %s\n", configPath)
		return nil
	}

	fmt.Fprintf(out, "New config file created at: %s\n", configPath)
	printConfig(out, *cfg)
	return nil
}
