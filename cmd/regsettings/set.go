package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regsettings/pkg/settings"
	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

var setType string

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "sz", "Value type (sz, expand_sz, multi_sz, dword, qword, binary); multi_sz splits on newlines")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <name> <value>",
		Short: "Write a setting",
		Long: `The set command writes a setting, creating the key path when needed,
and flushes the store.

Example:
  regsettings set 'HKEY_CURRENT_USER\Software\Acme' Theme dark
  regsettings set 'HKEY_CURRENT_USER\Software\Acme' Retries 3 --type dword
  regsettings set 'HKEY_CURRENT_USER\Software\Acme' Blob 0a1b --type binary`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	fullPath, name, valueStr := args[0], args[1], args[2]

	root, rel, err := settings.Resolve(fullPath)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	typeName := strings.ToLower(setType)
	if typeName == "" || typeName == "sz" {
		err = settings.New(st).SaveValue(root, rel, name, valueStr)
	} else {
		err = setTyped(st, root, rel, name, valueStr, typeName)
	}
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	if err := st.Flush(root); err != nil {
		return fmt.Errorf("failed to flush store: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"root":    root.String(),
			"path":    rel,
			"name":    name,
			"success": true,
		})
	}

	printVerbose("Set %s\\%s [%s]\n", root.Short(), rel, name)
	printInfo("✓ Value set successfully\n")
	return nil
}

// setTyped writes a non-string value directly through the store.
func setTyped(st store.Store, root types.Root, rel, name, valueStr, typeName string) error {
	if name == "" {
		return types.ArgumentNull("key")
	}
	v, err := types.ParseValue(valueStr, typeName)
	if err != nil {
		return err
	}
	k, err := st.OpenKey(root, rel, store.Write)
	if errors.Is(err, types.ErrNotFound) {
		k, err = st.CreateKey(root, rel)
	}
	if err != nil {
		return err
	}
	defer k.Close()
	return k.SetValue(name, v)
}
