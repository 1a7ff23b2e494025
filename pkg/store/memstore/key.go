package memstore

import (
	"strings"

	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

var errClosed = &types.Error{Kind: types.ErrKindState, Msg: "key is closed"}

type key struct {
	s      *Store
	root   types.Root
	n      *node
	access store.Access
	closed bool
}

func (k *key) Value(name string) (types.Value, error) {
	if k.closed {
		return types.Value{}, errClosed
	}
	k.s.mu.RLock()
	defer k.s.mu.RUnlock()

	v, ok := k.n.values[strings.ToLower(name)]
	if !ok {
		return types.Value{}, types.NotFound(`value "` + name + `"`)
	}
	return v.Value.Clone(), nil
}

func (k *key) SetValue(name string, v types.Value) error {
	if k.closed {
		return errClosed
	}
	if k.access != store.Write {
		return types.ErrReadonly
	}
	if err := types.CheckValueName(name); err != nil {
		return err
	}
	k.s.mu.Lock()
	lower := strings.ToLower(name)
	if existing, ok := k.n.values[lower]; ok {
		existing.Value = v.Clone()
	} else {
		k.n.values[lower] = &NamedValue{Name: name, Value: v.Clone()}
	}
	k.s.mu.Unlock()

	k.s.changed(k.root)
	return nil
}

func (k *key) DeleteValue(name string, mustExist bool) error {
	if k.closed {
		return errClosed
	}
	if k.access != store.Write {
		return types.ErrReadonly
	}
	k.s.mu.Lock()
	lower := strings.ToLower(name)
	_, ok := k.n.values[lower]
	delete(k.n.values, lower)
	k.s.mu.Unlock()

	if !ok {
		if mustExist {
			return types.NotFound(`value "` + name + `"`)
		}
		return nil
	}
	k.s.changed(k.root)
	return nil
}

func (k *key) Close() error {
	k.closed = true
	return nil
}
