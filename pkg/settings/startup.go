package settings

import (
	"errors"

	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

// RunKeyPath is the per-user autostart location, relative to RootUser.
const RunKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`

// disabledSentinel is the default IsEnabled compares against.
const disabledSentinel = "null"

// Startup toggles the host application's autostart entry.
type Startup struct {
	st   store.Store
	host Host
	opts options
}

// NewStartup returns a Startup registering host in st.
func NewStartup(st store.Store, host Host, opts ...Option) *Startup {
	return &Startup{st: st, host: host, opts: buildOptions(opts)}
}

// IsEnabled reports whether an autostart entry named after the product
// exists. An entry holding the literal string "null" counts as absent.
func (s *Startup) IsEnabled() bool {
	if s.st == nil || s.host == nil {
		return false
	}
	enabled := s.readEntry() != disabledSentinel
	if err := s.st.Flush(types.RootUser); err != nil {
		s.opts.logger().Warn("flush after autostart read failed", "error", err)
	}
	return enabled
}

// readEntry returns the entry's string form, or the sentinel when it
// cannot be read.
func (s *Startup) readEntry() string {
	k, err := s.st.OpenKey(types.RootUser, s.opts.runKey, store.Read)
	if err != nil {
		return disabledSentinel
	}
	defer k.Close()

	v, err := k.Value(s.host.ProductName())
	if err != nil {
		return disabledSentinel
	}
	return v.String()
}

// SetEnabled writes or removes the autostart entry. When the autostart
// location cannot be opened it does nothing. Removing an absent entry is
// not an error.
func (s *Startup) SetEnabled(enabled bool) error {
	if s.st == nil {
		return types.ArgumentNull("store")
	}
	if s.host == nil {
		return types.ArgumentNull("host")
	}
	k, err := s.st.OpenKey(types.RootUser, s.opts.runKey, store.Write)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			s.opts.logger().Debug("autostart location unavailable", "path", s.opts.runKey, "error", err)
		}
		return nil
	}

	name := s.host.ProductName()
	if enabled {
		err = k.SetValue(name, types.StringValue(s.host.ExecutablePath()))
	} else {
		err = k.DeleteValue(name, false)
	}
	if cerr := k.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return s.st.Flush(types.RootUser)
}
