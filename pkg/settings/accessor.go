package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

// NotSet is returned by GetValue when the key exists but the value does not.
const NotSet = "未设置"

// Status classifies the outcome of a Lookup.
type Status int

const (
	// Found means the value exists and is not an empty multi-string.
	Found Status = iota
	// ValueMissing means the key exists but holds no such value.
	ValueMissing
	// KeyMissing means the key path does not exist.
	KeyMissing
	// EmptySequence means the value is a multi-string with no elements.
	EmptySequence
	// StoreError means the store failed while opening or reading.
	StoreError
)

var statusNames = [...]string{
	Found:         "found",
	ValueMissing:  "value-missing",
	KeyMissing:    "key-missing",
	EmptySequence: "empty-sequence",
	StoreError:    "store-error",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Result is the uncoerced outcome of a read.
type Result struct {
	Status Status
	Value  types.Value // set when Status is Found or EmptySequence
	Err    error       // set when Status is StoreError
}

// Accessor reads and writes string settings in a store.
type Accessor struct {
	st   store.Store
	opts options
}

// New returns an Accessor over st.
func New(st store.Store, opts ...Option) *Accessor {
	return &Accessor{st: st, opts: buildOptions(opts)}
}

// Lookup reads key under root\path and reports what it found. It never
// panics on store failures; they are reported as StoreError.
func (a *Accessor) Lookup(root types.Root, path, key string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: StoreError, Err: fmt.Errorf("store panic: %v", r)}
		}
	}()

	if a.st == nil {
		return Result{Status: StoreError, Err: types.ArgumentNull("store")}
	}
	k, err := a.st.OpenKey(root, path, store.Read)
	switch {
	case errors.Is(err, types.ErrNotFound):
		return Result{Status: KeyMissing, Err: err}
	case err != nil:
		return Result{Status: StoreError, Err: err}
	}
	defer k.Close()

	v, err := k.Value(key)
	switch {
	case errors.Is(err, types.ErrNotFound):
		return Result{Status: ValueMissing}
	case err != nil:
		return Result{Status: StoreError, Err: err}
	case v.IsMulti() && len(v.Strings) == 0:
		return Result{Status: EmptySequence, Value: v}
	}
	return Result{Status: Found, Value: v}
}

// GetValue returns the string form of key under root\path.
//
//   - missing key path or any store error: ""
//   - missing value: NotSet
//   - multi-string: each element followed by "\r\n" ("" when empty)
//   - anything else: types.Value.String
func (a *Accessor) GetValue(root types.Root, path, key string) string {
	res := a.Lookup(root, path, key)
	switch res.Status {
	case Found:
		if res.Value.IsMulti() {
			var b strings.Builder
			for _, s := range res.Value.Strings {
				b.WriteString(s)
				b.WriteString("\r\n")
			}
			return b.String()
		}
		return res.Value.String()
	case ValueMissing:
		return NotSet
	case StoreError, KeyMissing:
		a.opts.logger().Debug("settings read failed",
			"root", root.Short(), "path", path, "key", key,
			"status", res.Status.String(), "error", res.Err)
	}
	return ""
}

// SaveValue writes value as a REG_SZ named key under root\path, creating
// the path when needed. Empty key or value fail with an argument error
// before the store is touched. Store errors are returned as is.
func (a *Accessor) SaveValue(root types.Root, path, key, value string) error {
	if key == "" {
		return types.ArgumentNull("key")
	}
	if value == "" {
		return types.ArgumentNull("value")
	}
	if a.st == nil {
		return types.ArgumentNull("store")
	}

	k, err := a.st.OpenKey(root, path, store.Write)
	if errors.Is(err, types.ErrNotFound) {
		k, err = a.st.CreateKey(root, path)
	}
	if err != nil {
		return err
	}
	defer k.Close()

	return k.SetValue(key, types.StringValue(value))
}

// Get resolves fullPath and calls GetValue. An unresolvable path yields "".
func (a *Accessor) Get(fullPath, key string) string {
	root, rel, err := Resolve(fullPath)
	if err != nil {
		a.opts.logger().Debug("settings path rejected", "path", fullPath, "error", err)
		return ""
	}
	return a.GetValue(root, rel, key)
}

// Save resolves fullPath and calls SaveValue.
func (a *Accessor) Save(fullPath, key, value string) error {
	root, rel, err := Resolve(fullPath)
	if err != nil {
		return err
	}
	return a.SaveValue(root, rel, key, value)
}
