package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/regsettings/pkg/settings"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "resolve <path>",
		Short: "Show which root and relative path a settings path maps to",
		Long: `The resolve command shows how a path is split into a root and the path
relative to it. Root keywords are matched case-sensitively against the first
segment; a segment with no keyword resolves to HKEY_LOCAL_MACHINE.

Example:
  regsettings resolve 'HKEY_USERS\.DEFAULT\Software'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args)
		},
	})
}

func runResolve(args []string) error {
	root, rel, err := settings.Resolve(args[0])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"root":  root.String(),
			"short": root.Short(),
			"path":  rel,
		})
	}
	printInfo("Root: %s (%s)\n", root.String(), root.Short())
	printInfo("Path: %s\n", rel)
	return nil
}
