package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stcatalog configuration file values.",
	Long: `Create, edit and display the stcatalog configuration file.

The configuration stores:
- sheets.spreadsheet_id / base_url / user_agent / timeout / requests_per_second
- ingest.concurrency
- categories[].name + endpoint (display order)
- contact.whatsapp_number / message_prefix
- web.port / title / images_base_url
- log.level / file / max_size_mb / max_backups

Every key can be overridden with an STCATALOG_ environment variable,
e.g. STCATALOG_SHEETS_SPREADSHEET_ID, also read from a local .env file.`,
	Example: `
  # Create default config in $HOME/.stcatalog.yaml
  stcatalog config create

  # Show active config and source file
  stcatalog config show

  # Open active config in editor (creates example if missing)
  stcatalog config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
