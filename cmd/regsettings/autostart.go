package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regsettings/internal/logger"
	"github.com/joshuapare/regsettings/pkg/settings"
)

var autostartExe string

func init() {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Inspect or toggle the per-user autostart entry",
		Long: `The autostart commands manage the value named after the product under
HKEY_CURRENT_USER\` + settings.RunKeyPath + `.

Example:
  regsettings autostart status --product Acme
  regsettings autostart enable --product Acme --exe 'C:\Program Files\Acme\acme.exe'
  regsettings autostart disable --product Acme`,
	}
	cmd.PersistentFlags().StringVar(&autostartExe, "exe", "", "Executable path to register (default: this binary)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Report whether autostart is enabled",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAutostartStatus()
			},
		},
		&cobra.Command{
			Use:   "enable",
			Short: "Register the product for autostart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAutostartSet(true)
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Remove the autostart entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAutostartSet(false)
			},
		},
	)
	rootCmd.AddCommand(cmd)
}

func newStartup() (*settings.Startup, settings.Host, error) {
	product := currentConfig().App.Product
	var host settings.Host
	if autostartExe != "" {
		if product == "" {
			return nil, nil, fmt.Errorf("--product is required with --exe")
		}
		host = settings.StaticHost{Name: product, Path: autostartExe}
	} else {
		h, err := settings.ProcessHost(product)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to determine executable path: %w", err)
		}
		host = h
	}

	st, err := openStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return settings.NewStartup(st, host), host, nil
}

func runAutostartStatus() error {
	s, host, err := newStartup()
	if err != nil {
		return err
	}
	enabled := s.IsEnabled()
	if jsonOut {
		return printJSON(map[string]interface{}{
			"product": host.ProductName(),
			"enabled": enabled,
		})
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	printInfo("Autostart for %s: %s\n", host.ProductName(), state)
	return nil
}

func runAutostartSet(enabled bool) error {
	s, host, err := newStartup()
	if err != nil {
		return err
	}
	before := s.IsEnabled()
	if err := s.SetEnabled(enabled); err != nil {
		return fmt.Errorf("failed to update autostart: %w", err)
	}
	// The location may be missing, in which case SetEnabled is a no-op.
	now := s.IsEnabled()
	if now != enabled {
		logger.Warn("autostart location unavailable", "path", settings.RunKeyPath, "product", host.ProductName())
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"product": host.ProductName(),
			"enabled": now,
			"changed": before != now,
		})
	}
	if now != enabled {
		printInfo("Autostart location %s is not available; nothing changed\n", settings.RunKeyPath)
		return nil
	}
	if enabled {
		printInfo("✓ Autostart enabled for %s (%s)\n", host.ProductName(), host.ExecutablePath())
	} else {
		printInfo("✓ Autostart disabled for %s\n", host.ProductName())
	}
	return nil
}
