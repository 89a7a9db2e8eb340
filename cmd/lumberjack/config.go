package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lumberjack/internal/config"
)

var flagValidate string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in config as YAML. Save it to
~/.lumberjack/configs/lumberjack.yaml to override the defaults, or pass a copy
with --config.

Examples:
  lumberjack config > ~/.lumberjack/configs/lumberjack.yaml
  lumberjack config --validate ./my-lumberjack.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagValidate, "validate", "", "Check a config file instead of printing the defaults")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagValidate == "" {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadLumberjack(flagValidate)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: ok (arena %.0fx%.0f, %d lives)\n",
		flagValidate, cfg.Arena.Width, cfg.Arena.Height, cfg.Round.Lives)
	return nil
}
