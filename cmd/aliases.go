package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/tai/pkg/alias"
	"thoreinstein.com/tai/pkg/bootstrap"
)

// aliasesCmd represents the aliases command
var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Inspect alias packs",
	Long:  `Inspect the YAML alias packs that add phrases to the tai shell.`,
}

// aliasesListCmd represents the aliases list command
var aliasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered alias packs",
	Long: `Scan alias directories and list every pack found.

User packs are loaded from ~/.config/tai/aliases. Project packs are loaded
from .tai/aliases in the directory tai starts in. Packs whose "requires"
constraint does not match this version of tai are listed but not loaded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAliasesListCommand(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
	aliasesCmd.AddCommand(aliasesListCmd)
}

func runAliasesListCommand(out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scanner := bootstrap.NewAliasScanner(cfg, GetVersion())
	result, err := scanner.Scan()
	if err != nil {
		return errors.Wrap(err, "failed to scan for alias packs")
	}

	dirs := make([]string, 0, len(scanner.Dirs))
	for _, d := range scanner.Dirs {
		dirs = append(dirs, d.Path)
	}

	if len(result.Packs) == 0 {
		fmt.Fprintf(out, "No alias packs found in %s\n", strings.Join(dirs, ", "))
		return nil
	}

	fmt.Fprintf(out, "Found %d alias pack(s) in %s:\n\n", len(result.Packs), strings.Join(dirs, ", "))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tALIASES\tSOURCE\tSTATUS\tPATH")

	for _, p := range result.Packs {
		count := 0
		if p.Manifest != nil {
			count = len(p.Manifest.Aliases)
		}

		status := string(p.Status)
		if p.Status != alias.StatusCompatible && p.Error != nil {
			status = fmt.Sprintf("%s (%v)", status, p.Error)
		}

		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", p.Name, count, p.Source, status, p.Path)
	}
	w.Flush()

	if !cfg.Aliases.Enabled {
		fmt.Fprintln(out, "\nAlias loading is disabled (aliases.enabled = false).")
	}

	return nil
}
