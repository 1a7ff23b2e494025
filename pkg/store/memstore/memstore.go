// Package memstore implements store.Store as an in-memory tree.
//
// Key and value names are matched case-insensitively, as the registry does,
// while the casing used at creation time is preserved for listing and export.
// A Store is safe for concurrent use.
package memstore

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

type node struct {
	name     string
	children map[string]*node
	values   map[string]*NamedValue
}

func newNode(name string) *node {
	return &node{
		name:     name,
		children: make(map[string]*node),
		values:   make(map[string]*NamedValue),
	}
}

// NamedValue pairs a value with the name it was stored under.
type NamedValue struct {
	Name  string
	Value types.Value
}

// Entry is one key in a Snapshot.
type Entry struct {
	Path   []string // segments below the root; empty for the root itself
	Values []NamedValue
}

// Option configures a Store.
type Option func(*Store)

// OnChange registers fn to be called (outside the lock) after every mutation.
func OnChange(fn func(root types.Root)) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store is an in-memory hierarchical store.
type Store struct {
	mu       sync.RWMutex
	roots    map[types.Root]*node
	onChange func(types.Root)
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{roots: make(map[types.Root]*node, len(types.Roots))}
	for _, r := range types.Roots {
		s.roots[r] = newNode(r.String())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenKey implements store.Store.
func (s *Store) OpenKey(root types.Root, path string, access store.Access) (store.Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.find(root, path)
	if err != nil {
		return nil, err
	}
	return &key{s: s, root: root, n: n, access: access}, nil
}

// CreateKey implements store.Store.
func (s *Store) CreateKey(root types.Root, path string) (store.Key, error) {
	n, created, err := s.ensure(root, path)
	if err != nil {
		return nil, err
	}
	if created {
		s.changed(root)
	}
	return &key{s: s, root: root, n: n, access: store.Write}, nil
}

// Flush implements store.Store. Memory is the durable medium, so there is
// nothing to do beyond validating the root.
func (s *Store) Flush(root types.Root) error {
	if !root.Valid() {
		return types.NotFound("root " + root.String())
	}
	return nil
}

// DeleteKey removes the key at path and its whole subtree. The root node
// itself cannot be deleted. Missing keys are ignored.
func (s *Store) DeleteKey(root types.Root, path string) error {
	segs := store.SplitPath(path)
	if len(segs) == 0 {
		return types.ArgumentNull("path")
	}
	s.mu.Lock()
	parent, err := s.find(root, store.JoinPath(segs[:len(segs)-1]...))
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		return err
	}
	last := strings.ToLower(segs[len(segs)-1])
	_, existed := parent.children[last]
	delete(parent.children, last)
	s.mu.Unlock()

	if existed {
		s.changed(root)
	}
	return nil
}

// Snapshot returns a deep copy of the tree under root in depth-first
// order. Children are ordered case-insensitively and values by name. The
// root itself is included only when it carries values.
func (s *Store) Snapshot(root types.Root) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roots[root]
	if !ok {
		return nil
	}
	var out []Entry
	if len(r.values) > 0 {
		out = append(out, Entry{Values: sortedValues(r)})
	}
	for _, c := range sortedChildren(r) {
		out = snapshot(out, c, []string{c.name})
	}
	return out
}

func snapshot(out []Entry, n *node, path []string) []Entry {
	out = append(out, Entry{
		Path:   append([]string(nil), path...),
		Values: sortedValues(n),
	})
	for _, c := range sortedChildren(n) {
		out = snapshot(out, c, append(path, c.name))
	}
	return out
}

func sortedChildren(n *node) []*node {
	children := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		return strings.ToLower(children[i].name) < strings.ToLower(children[j].name)
	})
	return children
}

func sortedValues(n *node) []NamedValue {
	values := make([]NamedValue, 0, len(n.values))
	for _, v := range n.values {
		values = append(values, NamedValue{Name: v.Name, Value: v.Value.Clone()})
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Name < values[j].Name })
	return values
}

// find walks to an existing node. Caller holds s.mu.
func (s *Store) find(root types.Root, path string) (*node, error) {
	n, ok := s.roots[root]
	if !ok {
		return nil, types.NotFound("root " + root.String())
	}
	for _, seg := range store.SplitPath(path) {
		child, ok := n.children[strings.ToLower(seg)]
		if !ok {
			return nil, types.NotFound(`key "` + path + `"`)
		}
		n = child
	}
	return n, nil
}

func (s *Store) ensure(root types.Root, path string) (*node, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.roots[root]
	if !ok {
		return nil, false, types.NotFound("root " + root.String())
	}
	segs := store.SplitPath(path)
	if err := types.CheckDepth(len(segs)); err != nil {
		return nil, false, err
	}
	for _, seg := range segs {
		if err := types.CheckKeyName(seg); err != nil {
			return nil, false, err
		}
	}
	created := false
	for _, seg := range segs {
		lower := strings.ToLower(seg)
		child, ok := n.children[lower]
		if !ok {
			child = newNode(seg)
			n.children[lower] = child
			created = true
		}
		n = child
	}
	return n, created, nil
}

func (s *Store) changed(root types.Root) {
	if s.onChange != nil {
		s.onChange(root)
	}
}
