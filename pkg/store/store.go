package store

import (
	"strings"

	"github.com/joshuapare/regsettings/pkg/types"
)

// Access selects how a key is opened.
type Access int

const (
	// Read opens a key for value queries only.
	Read Access = iota
	// Write opens a key for queries and mutations.
	Write
)

func (a Access) String() string {
	if a == Write {
		return "write"
	}
	return "read"
}

// Store is a hierarchical key/value tree rooted at types.Root.
type Store interface {
	// OpenKey opens an existing key. Returns an error matching
	// types.ErrNotFound when the key does not exist.
	OpenKey(root types.Root, path string, access Access) (Key, error)

	// CreateKey opens the key at path for writing, creating it and any
	// missing ancestors first.
	CreateKey(root types.Root, path string) (Key, error)

	// Flush commits pending changes under root to durable storage.
	Flush(root types.Root) error
}

// Key is an open handle on a single node of the tree.
type Key interface {
	// Value returns the named value ("" for the default value). Returns an
	// error matching types.ErrNotFound when it does not exist.
	Value(name string) (types.Value, error)

	// SetValue creates or replaces the named value. Returns
	// types.ErrReadonly on a handle opened with Read.
	SetValue(name string, v types.Value) error

	// DeleteValue removes the named value. A missing value is only an error
	// when mustExist is true.
	DeleteValue(name string, mustExist bool) error

	// Close releases the handle.
	Close() error
}

// SplitPath splits a relative key path into its segments. Both '\' and '/'
// separate segments; empty segments are dropped.
func SplitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
}

// JoinPath joins segments with backslashes.
func JoinPath(segments ...string) string {
	return strings.Join(segments, `\`)
}
