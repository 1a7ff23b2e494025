package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regsettings/internal/regtext"
	"github.com/joshuapare/regsettings/pkg/store/regfile"
	"github.com/joshuapare/regsettings/pkg/types"
)

var (
	exportOutput   string
	exportEncoding string
	exportBOM      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [root]",
		Short: "Export the settings file as .reg text",
		Long: `The export command renders the settings file, or one root of it, as
regedit-compatible .reg text. Only the regfile backend supports export.

Example:
  regsettings export HKCU
  regsettings export --output backup.reg --encoding UTF-16LE --bom`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&exportEncoding, "encoding", regtext.EncodingUTF8, "Output encoding (UTF-8 or UTF-16LE)")
	cmd.Flags().BoolVar(&exportBOM, "bom", false, "Write a byte order mark")
	rootCmd.AddCommand(cmd)
}

func runExport(args []string) error {
	roots := types.Roots
	if len(args) == 1 {
		r, ok := types.LookupRoot(args[0])
		if !ok {
			return fmt.Errorf("unknown root %q", args[0])
		}
		roots = []types.Root{r}
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	rf, ok := st.(*regfile.Store)
	if !ok {
		return fmt.Errorf("export requires the regfile backend, got %q", currentConfig().Store.Backend)
	}

	printVerbose("Exporting %s\n", rf.Path())
	data, err := rf.Export(regtext.EmitOptions{OutputEncoding: exportEncoding, WithBOM: exportBOM}, roots...)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	printVerbose("Wrote %d bytes to %s\n", len(data), exportOutput)
	return nil
}
