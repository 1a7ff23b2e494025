package regtext

import "github.com/joshuapare/regsettings/pkg/types"

// EditOp represents a high-level registry edit parsed from .reg text.
type EditOp interface{ isEdit() }

// OpCreateKey ensures a key exists.
type OpCreateKey struct {
	Root types.Root
	Path string
}

func (OpCreateKey) isEdit() {}

// OpDeleteKey removes a key and its subtree ([-HKEY_...\Path]).
type OpDeleteKey struct {
	Root types.Root
	Path string
}

func (OpDeleteKey) isEdit() {}

// OpSetValue sets a named value ("" is the default value).
type OpSetValue struct {
	Root  types.Root
	Path  string
	Name  string
	Value types.Value
}

func (OpSetValue) isEdit() {}

// OpDeleteValue removes a named value ("name"=-).
type OpDeleteValue struct {
	Root types.Root
	Path string
	Name string
}

func (OpDeleteValue) isEdit() {}
