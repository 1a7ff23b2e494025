package types

import "strings"

// Root selects one of the top-level trees of the hierarchical store.
type Root int

const (
	RootMachine       Root = iota // HKEY_LOCAL_MACHINE
	RootUser                      // HKEY_CURRENT_USER
	RootClassesRoot               // HKEY_CLASSES_ROOT
	RootUsers                     // HKEY_USERS
	RootCurrentConfig             // HKEY_CURRENT_CONFIG
)

// Roots lists every root in declaration order.
var Roots = []Root{RootMachine, RootUser, RootClassesRoot, RootUsers, RootCurrentConfig}

var rootNames = [...]struct{ long, short string }{
	RootMachine:       {"HKEY_LOCAL_MACHINE", "HKLM"},
	RootUser:          {"HKEY_CURRENT_USER", "HKCU"},
	RootClassesRoot:   {"HKEY_CLASSES_ROOT", "HKCR"},
	RootUsers:         {"HKEY_USERS", "HKU"},
	RootCurrentConfig: {"HKEY_CURRENT_CONFIG", "HKCC"},
}

// Valid reports whether r is one of the declared roots.
func (r Root) Valid() bool { return r >= RootMachine && r <= RootCurrentConfig }

// String returns the canonical HKEY_* name.
func (r Root) String() string {
	if !r.Valid() {
		return "HKEY_UNKNOWN"
	}
	return rootNames[r].long
}

// Short returns the abbreviated name (HKLM, HKCU, ...).
func (r Root) Short() string {
	if !r.Valid() {
		return "HK?"
	}
	return rootNames[r].short
}

// LookupRoot matches a canonical or abbreviated root name exactly
// (case-insensitive). It does not apply the keyword rules path resolution
// uses; it exists for .reg section headers and CLI arguments.
func LookupRoot(name string) (Root, bool) {
	for _, r := range Roots {
		if strings.EqualFold(name, rootNames[r].long) || strings.EqualFold(name, rootNames[r].short) {
			return r, true
		}
	}
	return RootMachine, false
}
