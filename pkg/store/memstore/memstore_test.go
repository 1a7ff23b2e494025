package memstore

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

func TestOpenKey_Missing(t *testing.T) {
	s := New()
	_, err := s.OpenKey(types.RootUser, `Software\Missing`, store.Read)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestCreateKey_CreatesAncestors(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `Software\Vendor\App`)
	require.NoError(t, err)
	require.NoError(t, k.SetValue("Name", types.StringValue("demo")))
	require.NoError(t, k.Close())

	for _, p := range []string{`Software`, `Software\Vendor`, `software/VENDOR/app`} {
		k, err := s.OpenKey(types.RootUser, p, store.Read)
		require.NoError(t, err, p)
		require.NoError(t, k.Close())
	}

	// Other roots are independent trees.
	_, err = s.OpenKey(types.RootMachine, `Software\Vendor\App`, store.Read)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestKey_ValueCaseInsensitive(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootMachine, `A`)
	require.NoError(t, err)
	defer k.Close()

	require.NoError(t, k.SetValue("Mixed", types.DWordValue(7)))
	v, err := k.Value("mixed")
	require.NoError(t, err)
	assert.Equal(t, types.DWordValue(7), v)

	require.NoError(t, k.SetValue("MIXED", types.DWordValue(8)))
	snap := s.Snapshot(types.RootMachine)
	require.Len(t, snap, 1)
	require.Len(t, snap[0].Values, 1)
	assert.Equal(t, "Mixed", snap[0].Values[0].Name, "original casing is kept")
	assert.Equal(t, uint64(8), snap[0].Values[0].Value.Integer)
}

func TestKey_ReadOnly(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	ro, err := s.OpenKey(types.RootUser, `A`, store.Read)
	require.NoError(t, err)
	defer ro.Close()

	require.ErrorIs(t, ro.SetValue("x", types.StringValue("y")), types.ErrReadonly)
	require.ErrorIs(t, ro.DeleteValue("x", false), types.ErrReadonly)
}

func TestKey_DeleteValue(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	defer k.Close()

	require.NoError(t, k.DeleteValue("absent", false))
	require.ErrorIs(t, k.DeleteValue("absent", true), types.ErrNotFound)

	require.NoError(t, k.SetValue("present", types.StringValue("1")))
	require.NoError(t, k.DeleteValue("PRESENT", true))
	_, err = k.Value("present")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestKey_Closed(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	_, err = k.Value("x")
	require.Error(t, err)
	require.Error(t, k.SetValue("x", types.StringValue("y")))
}

func TestValuesAreCopied(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	defer k.Close()

	in := []string{"a", "b"}
	require.NoError(t, k.SetValue("m", types.MultiStringValue(in)))
	in[0] = "mutated"

	v, err := k.Value("m")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Strings)
}

func TestDeleteKey(t *testing.T) {
	s := New()
	k, err := s.CreateKey(types.RootUser, `A\B\C`)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	require.NoError(t, s.DeleteKey(types.RootUser, `a\b`))
	_, err = s.OpenKey(types.RootUser, `A\B\C`, store.Read)
	require.ErrorIs(t, err, types.ErrNotFound)

	k, err = s.OpenKey(types.RootUser, `A`, store.Read)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	require.NoError(t, s.DeleteKey(types.RootUser, `Nope\Nested`))
	require.ErrorIs(t, s.DeleteKey(types.RootUser, ``), types.ErrArgumentNull)
}

func TestSnapshot_Order(t *testing.T) {
	s := New()
	for _, p := range []string{`b`, `A\z`, `A\Y`} {
		k, err := s.CreateKey(types.RootUser, p)
		require.NoError(t, err)
		require.NoError(t, k.Close())
	}
	root, err := s.OpenKey(types.RootUser, ``, store.Write)
	require.NoError(t, err)
	require.NoError(t, root.SetValue("", types.StringValue("default")))
	require.NoError(t, root.Close())

	var paths []string
	for _, e := range s.Snapshot(types.RootUser) {
		paths = append(paths, store.JoinPath(e.Path...))
	}
	assert.Equal(t, []string{``, `A`, `A\Y`, `A\z`, `b`}, paths)
}

func TestOnChange(t *testing.T) {
	var mu sync.Mutex
	changes := map[types.Root]int{}
	s := New(OnChange(func(r types.Root) {
		mu.Lock()
		changes[r]++
		mu.Unlock()
	}))

	k, err := s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	require.NoError(t, k.SetValue("v", types.StringValue("1")))
	require.NoError(t, k.DeleteValue("missing", false))
	require.NoError(t, k.Close())

	k, err = s.CreateKey(types.RootUser, `A`)
	require.NoError(t, err)
	require.NoError(t, k.Close())

	assert.Equal(t, 2, changes[types.RootUser], "create + set; no-op delete and re-open do not count")
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, err := s.CreateKey(types.RootUser, `Shared`)
			if err != nil {
				t.Error(err)
				return
			}
			defer k.Close()
			_ = k.SetValue("n", types.DWordValue(1))
			_, _ = k.Value("n")
		}()
	}
	wg.Wait()
}

func TestLimits(t *testing.T) {
	s := New()

	_, err := s.CreateKey(types.RootUser, `Software\`+strings.Repeat("k", types.MaxKeyNameLen+1))
	assert.ErrorIs(t, err, types.ArgumentNull("path"))
	_, err = s.OpenKey(types.RootUser, "Software", store.Read)
	assert.ErrorIs(t, err, types.ErrNotFound, "rejected path leaves no partial keys")

	deep := strings.TrimSuffix(strings.Repeat(`d\`, types.MaxTreeDepth+1), `\`)
	_, err = s.CreateKey(types.RootUser, deep)
	assert.Error(t, err)

	k, err := s.CreateKey(types.RootUser, strings.Repeat("k", types.MaxKeyNameLen))
	require.NoError(t, err)
	defer k.Close()
	assert.Error(t, k.SetValue(strings.Repeat("v", types.MaxValueNameLen+1), types.StringValue("x")))
	assert.NoError(t, k.SetValue(strings.Repeat("v", types.MaxValueNameLen), types.StringValue("x")))
}
