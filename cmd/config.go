package cmd

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect tai configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration tai would run with: defaults, overridden by
~/.config/tai/config.toml (or --config), .tai.toml in the current directory
and TAI_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShowCommand(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShowCommand(out io.Writer) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	data, err := toml.Marshal(viper.AllSettings())
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# loaded from %s\n", used)
	}
	_, err = out.Write(data)
	return err
}
