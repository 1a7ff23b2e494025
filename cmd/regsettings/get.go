package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regsettings/pkg/settings"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Print a setting",
		Long: `The get command prints the string form of a setting.

A missing key prints nothing; a missing value prints the not-set marker.
Multi-string values print one element per line.

Example:
  regsettings get 'HKEY_CURRENT_USER\Software\Acme' Theme
  regsettings get 'HKEY_CURRENT_USER\Software\Acme' Theme --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
}

func runGet(args []string) error {
	fullPath, name := args[0], args[1]

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	acc := settings.New(st)
	value := acc.Get(fullPath, name)

	if jsonOut {
		result := map[string]interface{}{
			"path":  fullPath,
			"name":  name,
			"value": value,
		}
		if root, rel, err := settings.Resolve(fullPath); err == nil {
			res := acc.Lookup(root, rel, name)
			result["root"] = root.String()
			result["status"] = res.Status.String()
			if res.Status == settings.Found || res.Status == settings.EmptySequence {
				result["type"] = res.Value.Type.String()
			}
		}
		return printJSON(result)
	}

	printInfo("%s", value)
	if value != "" && value[len(value)-1] != '\n' {
		printInfo("\n")
	}
	return nil
}
