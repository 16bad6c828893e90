package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stcatalog/config"
)

const editorEnv = "STCATALOG_EDITOR"

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active stcatalog config file in your editor.

Editor selection order:
1) $STCATALOG_EDITOR
2) $VISUAL
3) $EDITOR
4) vi

If no config file exists yet, this command creates one from the example template first.
After the editor exits, the file is validated (spreadsheet ID, category table, ports,
log level) and the resulting settings are printed.`,
	Example: `
  # Edit active config
  stcatalog config edit

  # Use a specific editor once
  STCATALOG_EDITOR="code --wait" stcatalog config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		editor := resolveEditorValue(os.Getenv(editorEnv), os.Getenv("VISUAL"), os.Getenv("EDITOR"))
		return editConfigFile(os.Stdout, configPath, editor)
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}

func editConfigFile(out io.Writer, configPath, editor string) error {
	created, err := writeConfigIfMissing(configPath, config.ExampleYAML())
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "No config file found. Created example config at: %s\n", configPath)
	}

	editorCommand, err := buildEditorCommand(editor, configPath)
	if err != nil {
		return err
	}
	editorCommand.Stdin = os.Stdin
	editorCommand.Stdout = os.Stdout
	editorCommand.Stderr = os.Stderr
	if err := editorCommand.Run(); err != nil {
		return fmt.Errorf("opening editor failed: %w", err)
	}

	cfg, err := validateConfigFile(configPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration saved and validated: %s\n", configPath)
	printConfig(out, *cfg)
	return nil
}

func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s failed: %w", path, err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfigPath picks the --configFile flag, then the file viper loaded,
// then $HOME/.stcatalog.yaml.
func resolveConfigPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".stcatalog.yaml"), nil
}

// writeConfigIfMissing writes content to path unless a file already exists
// there. It reports whether it wrote.
func writeConfigIfMissing(path, content string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("writing config file failed: %w", err)
	}

	return true, nil
}

func resolveEditorValue(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

func buildEditorCommand(editorValue, configPath string) (*exec.Cmd, error) {
	fields := strings.Fields(strings.TrimSpace(editorValue))
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	args := append(fields[1:], configPath)
	return exec.Command(fields[0], args...), nil
}
