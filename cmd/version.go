package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the tai release, set at build time with
// -ldflags "-X thoreinstein.com/tai/cmd.Version=v1.2.3".
var Version = "dev"

// GetVersion returns the running tai version.
func GetVersion() string {
	return Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tai version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tai %s (%s/%s, %s)\n", GetVersion(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
