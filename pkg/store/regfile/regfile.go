// Package regfile implements store.Store on top of a regedit-compatible
// .reg file.
//
// The whole file is loaded into a memstore on Open. Mutations mark the
// affected root dirty; Flush rewrites the file atomically (temp file,
// sync, rename), optionally keeping the previous version as <path>.bak.
package regfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joshuapare/regsettings/internal/durable"
	"github.com/joshuapare/regsettings/internal/logger"
	"github.com/joshuapare/regsettings/internal/regtext"
	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/store/memstore"
	"github.com/joshuapare/regsettings/pkg/types"
)

// SyncMode controls durability of Flush (re-exported for convenience).
type SyncMode = durable.Mode

// Sync mode constants.
const (
	SyncAuto = durable.SyncAuto
	SyncNone = durable.SyncNone
	SyncFull = durable.SyncFull
)

// ParseSyncMode maps "auto", "none" and "full" to a SyncMode.
func ParseSyncMode(s string) (SyncMode, error) { return durable.ParseMode(s) }

// Options controls how the file is read and written.
type Options struct {
	// InputEncoding is used when the file has no byte order mark:
	// "" (UTF-8), "UTF-16LE" or "Windows-1252".
	InputEncoding string

	// OutputEncoding selects the encoding Flush writes.
	// Default: "UTF-16LE" with BOM, as regedit.exe writes.
	OutputEncoding string

	// NoBOM omits the byte order mark on output.
	NoBOM bool

	// CreateBackup copies the existing file to <path>.bak before each write.
	CreateBackup bool

	// SyncMode selects fsync behavior for Flush.
	SyncMode SyncMode
}

// Store is a file-backed hierarchical store.
type Store struct {
	path string
	opts Options
	mem  *memstore.Store

	mu    sync.Mutex
	dirty map[types.Root]bool
}

var _ store.Store = (*Store)(nil)

// Open loads path into memory. A missing file yields an empty store that
// is created on the first Flush.
func Open(path string, opts *Options) (*Store, error) {
	if path == "" {
		return nil, types.ArgumentNull("path")
	}
	s := &Store{path: path, dirty: make(map[types.Root]bool)}
	if opts != nil {
		s.opts = *opts
	}
	if s.opts.OutputEncoding == "" {
		s.opts.OutputEncoding = regtext.EncodingUTF16LE
	}
	s.mem = memstore.New(memstore.OnChange(s.markDirty))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("settings file does not exist yet", "path", path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ops, err := regtext.Parse(data, regtext.ParseOptions{InputEncoding: s.opts.InputEncoding})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := s.apply(ops); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	s.clearDirty()
	logger.Debug("loaded settings file", "path", path, "ops", len(ops))
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// OpenKey implements store.Store.
func (s *Store) OpenKey(root types.Root, path string, access store.Access) (store.Key, error) {
	return s.mem.OpenKey(root, path, access)
}

// CreateKey implements store.Store.
func (s *Store) CreateKey(root types.Root, path string) (store.Key, error) {
	return s.mem.CreateKey(root, path)
}

// Flush implements store.Store. The file holds every root, so a flush of
// a dirty root persists all pending changes.
func (s *Store) Flush(root types.Root) error {
	if !root.Valid() {
		return types.NotFound("root " + root.String())
	}
	s.mu.Lock()
	dirty := s.dirty[root]
	s.mu.Unlock()
	if !dirty {
		return nil
	}
	return s.Sync()
}

// Sync writes the whole tree to disk regardless of dirty state.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.render(regtext.EmitOptions{
		OutputEncoding: s.opts.OutputEncoding,
		WithBOM:        !s.opts.NoBOM,
	}, types.Roots...)
	if err != nil {
		return err
	}

	_, statErr := os.Stat(s.path)
	created := errors.Is(statErr, os.ErrNotExist)
	if created {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", s.path, err)
		}
	}

	if s.opts.CreateBackup {
		if statErr == nil {
			backupPath := s.path + ".bak"
			if err := durable.CopyFile(s.path, backupPath); err != nil {
				return fmt.Errorf("failed to create backup at %s: %w", backupPath, err)
			}
		}
	}

	if err := durable.WriteFile(s.path, data, 0o644, s.opts.SyncMode); err != nil {
		return err
	}
	for r := range s.dirty {
		delete(s.dirty, r)
	}
	if created {
		logger.Info("created settings file", "path", s.path)
	}
	logger.Debug("flushed settings file", "path", s.path, "bytes", len(data), "sync", s.opts.SyncMode.String())
	return nil
}

// Export renders the given roots as .reg text without touching the file.
func (s *Store) Export(opts regtext.EmitOptions, roots ...types.Root) ([]byte, error) {
	return s.render(opts, roots...)
}

// Dirty reports whether root has unflushed changes.
func (s *Store) Dirty(root types.Root) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[root]
}

func (s *Store) render(opts regtext.EmitOptions, roots ...types.Root) ([]byte, error) {
	var sections []regtext.Section
	for _, r := range roots {
		for _, e := range s.mem.Snapshot(r) {
			sec := regtext.Section{Root: r, Path: store.JoinPath(e.Path...)}
			for _, v := range e.Values {
				sec.Values = append(sec.Values, regtext.Entry{Name: v.Name, Value: v.Value})
			}
			sections = append(sections, sec)
		}
	}
	return regtext.Emit(sections, opts)
}

func (s *Store) apply(ops []regtext.EditOp) error {
	for _, op := range ops {
		var err error
		switch o := op.(type) {
		case regtext.OpCreateKey:
			err = s.withKey(o.Root, o.Path, func(store.Key) error { return nil })
		case regtext.OpDeleteKey:
			err = s.mem.DeleteKey(o.Root, o.Path)
		case regtext.OpSetValue:
			err = s.withKey(o.Root, o.Path, func(k store.Key) error { return k.SetValue(o.Name, o.Value) })
		case regtext.OpDeleteValue:
			k, openErr := s.mem.OpenKey(o.Root, o.Path, store.Write)
			if errors.Is(openErr, types.ErrNotFound) {
				continue
			}
			if openErr != nil {
				return openErr
			}
			err = k.DeleteValue(o.Name, false)
			k.Close()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) withKey(root types.Root, path string, fn func(store.Key) error) error {
	k, err := s.mem.CreateKey(root, path)
	if err != nil {
		return err
	}
	defer k.Close()
	return fn(k)
}

func (s *Store) markDirty(root types.Root) {
	s.mu.Lock()
	s.dirty[root] = true
	s.mu.Unlock()
}

func (s *Store) clearDirty() {
	s.mu.Lock()
	for r := range s.dirty {
		delete(s.dirty, r)
	}
	s.mu.Unlock()
}
