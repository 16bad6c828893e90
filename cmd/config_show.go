package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stcatalog/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  stcatalog config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults and environment overrides.")
		}
		fmt.Println("Configuration:")
		printConfig(os.Stdout, *cfg)
	},
}

func printConfig(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "sheets.spreadsheet_id: %s\n", cfg.Sheets.SpreadsheetID)
	fmt.Fprintf(w, "sheets.base_url: %s\n", cfg.Sheets.BaseURL)
	fmt.Fprintf(w, "sheets.user_agent: %s\n", cfg.Sheets.UserAgent)
	fmt.Fprintf(w, "sheets.timeout: %s\n", cfg.Sheets.Timeout)
	fmt.Fprintf(w, "sheets.requests_per_second: %g\n", cfg.Sheets.RequestsPerSecond)
	fmt.Fprintf(w, "ingest.concurrency: %d\n", cfg.Ingest.Concurrency)
	fmt.Fprintf(w, "categories: %d\n", len(cfg.Categories))
	for i, category := range cfg.Categories {
		fmt.Fprintf(w, "categories[%d].name: %s\n", i, category.Category)
		fmt.Fprintf(w, "categories[%d].endpoint: %s\n", i, category.Endpoint)
	}
	fmt.Fprintf(w, "contact.whatsapp_number: %s\n", cfg.Contact.WhatsAppNumber)
	fmt.Fprintf(w, "contact.message_prefix: %s\n", cfg.Contact.MessagePrefix)
	fmt.Fprintf(w, "web.port: %d\n", cfg.Web.Port)
	fmt.Fprintf(w, "web.title: %s\n", cfg.Web.Title)
	fmt.Fprintf(w, "web.images_base_url: %s\n", cfg.Web.ImagesBaseURL)
	fmt.Fprintf(w, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "log.file: %s\n", cfg.Log.File)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
