// Package store defines the hierarchical store consumed by the settings
// accessor.
//
// A Store exposes one tree per types.Root. Keys are addressed by a
// backslash separated path relative to the root ("Software\Vendor\App")
// and hold named, typed values. Implementations live in subpackages:
//
//   - memstore: in-memory tree, used by tests and as the working set of regfile
//   - regfile:  a memstore persisted as a regedit-compatible .reg file
//   - winreg:   the live Windows registry (windows only)
//
// Every Key returned by OpenKey or CreateKey must be closed by the caller.
package store
