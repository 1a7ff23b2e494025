package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joshuapare/regsettings/internal/config"
	"github.com/joshuapare/regsettings/internal/logger"
	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/store/memstore"
	"github.com/joshuapare/regsettings/pkg/store/regfile"
	"github.com/joshuapare/regsettings/pkg/store/winreg"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configFile string

	// cfg is resolved once per invocation by loadConfig.
	cfg      *config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "regsettings",
	Short: "Read and write application settings in a registry-style store",
	Long: `regsettings reads and writes string settings addressed by regedit-style
paths such as HKEY_CURRENT_USER\Software\Acme, and toggles the per-user
autostart entry of an application.

Settings live in a .reg file by default, so the tool works on any platform.
On Windows, --store native uses the live registry instead.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.Root().PersistentFlags())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	pf.StringVar(&configFile, "config", "", "Config file (default: ./regsettings.yaml, then the user config dir)")
	pf.String("store", "", "Store backend: regfile, native or memory")
	pf.String("file", "", "Path of the .reg file for the regfile backend")
	pf.String("product", "", "Product name used for the autostart entry")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		printError("%v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, config file, environment and flags, then
// configures logging.
func loadConfig(flags *pflag.FlagSet) error {
	c, err := config.Load(config.Options{
		File: configFile,
		Flags: map[string]*pflag.Flag{
			"store.backend": flags.Lookup("store"),
			"store.file":    flags.Lookup("file"),
			"app.product":   flags.Lookup("product"),
			"log.level":     flags.Lookup("log-level"),
		},
	})
	if err != nil {
		return err
	}
	cfg = c

	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	closeLog, err = logger.Init(logger.Options{Level: level, Stderr: os.Stderr, File: c.Log.File})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logger.Debug("configuration loaded", "backend", c.Store.Backend, "file", c.Store.File)
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when the
// command runs outside cobra (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg
}

// openStore opens the configured backend.
func openStore() (store.Store, error) {
	c := currentConfig()
	switch c.Store.Backend {
	case config.BackendMemory:
		return memstore.New(), nil
	case config.BackendNative:
		return winreg.Open()
	case config.BackendRegfile, "":
		mode, err := regfile.ParseSyncMode(c.Store.Sync)
		if err != nil {
			return nil, err
		}
		printVerbose("Opening settings file: %s\n", c.Store.File)
		return regfile.Open(c.Store.File, &regfile.Options{
			OutputEncoding: c.Store.Encoding,
			CreateBackup:   c.Store.Backup,
			SyncMode:       mode,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
