// Package types defines the shared vocabulary of regsettings: root
// selectors, registry value types, decoded values and typed errors.
//
// Design goals:
//   - Small, copyable values instead of handles into a backing store.
//   - Typed errors with stable categories (not-found/argument/path/...).
//   - Value rendering that matches what a settings consumer expects to
//     see from a registry read.
//
// This package has no dependencies beyond the standard library.
package types
