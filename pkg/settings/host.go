package settings

import (
	"os"
	"path/filepath"
	"strings"
)

// Host supplies the identity of the application being registered for
// autostart.
type Host interface {
	// ProductName names the autostart value; unique per installed application.
	ProductName() string
	// ExecutablePath is the absolute path of the running binary.
	ExecutablePath() string
}

// StaticHost is a Host with fixed values.
type StaticHost struct {
	Name string
	Path string
}

func (h StaticHost) ProductName() string    { return h.Name }
func (h StaticHost) ExecutablePath() string { return h.Path }

// ProcessHost returns a Host for the current process. The executable path
// has symlinks resolved. An empty name falls back to the executable's base
// name without extension.
func ProcessHost(name string) (Host, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if name == "" {
		base := filepath.Base(exe)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return StaticHost{Name: name, Path: exe}, nil
}
