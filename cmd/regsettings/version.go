package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			root := cmd.Root()
			if jsonOut {
				_ = printJSON(map[string]string{
					"version": root.Version,
					"commit":  commit,
					"built":   date,
					"go":      runtime.Version(),
				})
				return
			}
			printInfo("%s %s\n", root.Name(), root.Version)
			printInfo("  commit: %s\n", commit)
			printInfo("  built: %s (%s)\n", date, runtime.Version())
		},
	})
}
