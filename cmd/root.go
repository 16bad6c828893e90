/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stcatalog/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stcatalog",
	Short: "Ingest the published product spreadsheet and serve it as a catalog.",
	Long: `
**********************************************
*              ST CATALOG                    *
**********************************************

This CLI fetches every category tab of the published product spreadsheet,
normalizes the rows into products (names, list and cash prices, model links)
and either prints them, exports a snapshot to CSV or Excel, or serves the
public web catalog.

Supported sources:
- gsheets: published Google Sheets tabs (CSV export per gid)
- dir: a directory with one <endpoint>.csv file per category
- excel: an .xlsx workbook with one sheet per category
`,
	Example: `
  # Create configuration file
  stcatalog config create

  # Print the live catalog
  stcatalog fetch

  # Print two categories from a local CSV mirror
  stcatalog fetch --source dir --input ./mirror --category JBL --category APPLE

  # Export a snapshot to Excel
  stcatalog export --output ./catalog.xlsx

  # Serve the web catalog
  stcatalog serve --port 9090
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.stcatalog.yaml, then ./.stcatalog.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "fetch", "export", "serve":
		return true
	default:
		return false
	}
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".stcatalog" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stcatalog")
	}

	viper.SetEnvPrefix("STCATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Defaults cover every key, so a missing file only warrants a hint.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: stcatalog config create")
	}
}
