// Package winreg implements store.Store on the live Windows registry.
//
// It is only functional when built for GOOS=windows. On other platforms
// Open returns types.ErrUnsupported so callers can fall back to a file or
// memory backend.
package winreg
