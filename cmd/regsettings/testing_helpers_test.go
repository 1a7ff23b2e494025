package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/regsettings/internal/config"
)

// useTempStore points the CLI at a fresh .reg file and resets global flags.
func useTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.reg")
	c := config.DefaultConfig()
	c.Store.File = path
	c.Store.Sync = "none"
	c.App.Product = "Acme"

	prev := cfg
	cfg = c
	verbose, quiet, jsonOut = false, false, false
	setType = "sz"
	autostartExe = ""
	exportOutput, exportEncoding, exportBOM = "", "UTF-8", false
	t.Cleanup(func() { cfg = prev })
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs do not block the writer
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}
