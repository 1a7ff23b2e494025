//go:build windows

package winreg

import (
	"errors"
	"fmt"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regsettings/internal/buf"
	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

var (
	modadvapi32     = windows.NewLazySystemDLL("advapi32.dll")
	procRegFlushKey = modadvapi32.NewProc("RegFlushKey")
)

// Store is a thin adapter over registry.Key handles.
type Store struct{}

var _ store.Store = (*Store)(nil)

// Open returns the native registry store.
func Open() (store.Store, error) {
	return &Store{}, nil
}

func rootKey(root types.Root) (registry.Key, error) {
	switch root {
	case types.RootMachine:
		return registry.LOCAL_MACHINE, nil
	case types.RootUser:
		return registry.CURRENT_USER, nil
	case types.RootClassesRoot:
		return registry.CLASSES_ROOT, nil
	case types.RootUsers:
		return registry.USERS, nil
	case types.RootCurrentConfig:
		return registry.CURRENT_CONFIG, nil
	default:
		return 0, types.NotFound("root " + root.String())
	}
}

// OpenKey implements store.Store.
func (s *Store) OpenKey(root types.Root, path string, access store.Access) (store.Key, error) {
	rk, err := rootKey(root)
	if err != nil {
		return nil, err
	}
	mask := uint32(registry.QUERY_VALUE)
	if access == store.Write {
		mask |= registry.SET_VALUE
	}
	k, err := registry.OpenKey(rk, store.JoinPath(store.SplitPath(path)...), mask)
	if err != nil {
		return nil, mapErr(root.Short()+`\`+path, err)
	}
	return &key{k: k}, nil
}

// CreateKey implements store.Store.
func (s *Store) CreateKey(root types.Root, path string) (store.Key, error) {
	rk, err := rootKey(root)
	if err != nil {
		return nil, err
	}
	k, _, err := registry.CreateKey(rk, store.JoinPath(store.SplitPath(path)...), registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return nil, mapErr(root.Short()+`\`+path, err)
	}
	return &key{k: k}, nil
}

// Flush implements store.Store via RegFlushKey.
func (s *Store) Flush(root types.Root) error {
	rk, err := rootKey(root)
	if err != nil {
		return err
	}
	if err := procRegFlushKey.Find(); err != nil {
		return err
	}
	r, _, _ := procRegFlushKey.Call(uintptr(rk))
	if r != 0 {
		return fmt.Errorf("RegFlushKey(%s): %w", root.Short(), syscall.Errno(r))
	}
	return nil
}

type key struct {
	mu sync.Mutex
	k  registry.Key
}

func (k *key) Value(name string) (types.Value, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	_, typ, err := k.k.GetValue(name, nil)
	if err != nil {
		return types.Value{}, mapErr("value "+name, err)
	}
	switch typ {
	case registry.SZ:
		s, _, err := k.k.GetStringValue(name)
		return types.StringValue(s), mapErr("value "+name, err)
	case registry.EXPAND_SZ:
		s, _, err := k.k.GetStringValue(name)
		return types.ExpandStringValue(s), mapErr("value "+name, err)
	case registry.MULTI_SZ:
		ss, _, err := k.k.GetStringsValue(name)
		return types.MultiStringValue(ss), mapErr("value "+name, err)
	case registry.DWORD:
		n, _, err := k.k.GetIntegerValue(name)
		return types.DWordValue(uint32(n)), mapErr("value "+name, err)
	case registry.QWORD:
		n, _, err := k.k.GetIntegerValue(name)
		return types.QWordValue(n), mapErr("value "+name, err)
	case registry.BINARY:
		data, _, err := k.k.GetBinaryValue(name)
		return types.BinaryValue(types.REG_BINARY, data), mapErr("value "+name, err)
	}

	data, err := k.raw(name)
	if err != nil {
		return types.Value{}, err
	}
	if typ == registry.DWORD_BIG_ENDIAN && len(data) == 4 {
		return types.Value{Type: types.REG_DWORD_BE, Integer: uint64(buf.U32BE(data))}, nil
	}
	return types.BinaryValue(types.RegType(typ), data), nil
}

func (k *key) raw(name string) ([]byte, error) {
	n, _, err := k.k.GetValue(name, nil)
	if err != nil {
		return nil, mapErr("value "+name, err)
	}
	buf := make([]byte, n)
	n, _, err = k.k.GetValue(name, buf)
	if err != nil {
		return nil, mapErr("value "+name, err)
	}
	return buf[:n], nil
}

func (k *key) SetValue(name string, v types.Value) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var err error
	switch v.Type {
	case types.REG_SZ:
		err = k.k.SetStringValue(name, v.Text)
	case types.REG_EXPAND_SZ:
		err = k.k.SetExpandStringValue(name, v.Text)
	case types.REG_MULTI_SZ:
		err = k.k.SetStringsValue(name, v.Strings)
	case types.REG_DWORD:
		err = k.k.SetDWordValue(name, uint32(v.Integer))
	case types.REG_QWORD:
		err = k.k.SetQWordValue(name, v.Integer)
	case types.REG_BINARY:
		err = k.k.SetBinaryValue(name, v.Data)
	default:
		return &types.Error{Kind: types.ErrKindUnsupported, Msg: "cannot write " + v.Type.String() + " natively", Param: name}
	}
	return mapErr("value "+name, err)
}

func (k *key) DeleteValue(name string, mustExist bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := k.k.DeleteValue(name)
	if errors.Is(err, registry.ErrNotExist) && !mustExist {
		return nil
	}
	return mapErr("value "+name, err)
}

func (k *key) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.k.Close()
}

func mapErr(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrNotExist):
		return &types.Error{Kind: types.ErrKindNotFound, Msg: what + " not found", Err: err}
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return &types.Error{Kind: types.ErrKindState, Msg: "access denied to " + what, Err: err}
	default:
		return err
	}
}
