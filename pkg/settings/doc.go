// Package settings reads and writes application settings in a
// hierarchical registry-style store.
//
// Paths are written the way regedit shows them:
//
//	HKEY_CURRENT_USER\Software\Acme\Widget
//
// Resolve maps the first segment to a types.Root by keyword and returns
// the remaining relative path. An Accessor then performs reads and writes
// against any store.Store:
//
//	acc := settings.New(st)
//	if err := acc.Save(`HKEY_CURRENT_USER\Software\Acme`, "Theme", "dark"); err != nil {
//		return err
//	}
//	theme := acc.Get(`HKEY_CURRENT_USER\Software\Acme`, "Theme")
//
// Reads never fail: a missing or unreadable key yields "", and a missing
// value yields NotSet. Writes return every store error to the caller.
//
// Startup toggles the per-user autostart entry for the host application
// under RunKeyPath.
package settings
