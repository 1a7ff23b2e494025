package regfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regsettings/internal/regtext"
	"github.com/joshuapare/regsettings/pkg/store"
	"github.com/joshuapare/regsettings/pkg/types"
)

const sample = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"[HKEY_CURRENT_USER\\Software\\Acme]\r\n" +
	"\"Name\"=\"Widget\"\r\n" +
	"\"Count\"=dword:0000002a\r\n" +
	"\r\n" +
	"[HKEY_CURRENT_USER\\Software\\Acme\\Old]\r\n" +
	"\r\n" +
	"[-HKEY_CURRENT_USER\\Software\\Acme\\Old]\r\n" +
	"\r\n" +
	"[HKEY_LOCAL_MACHINE\\SOFTWARE\\Acme]\r\n" +
	"\"Gone\"=-\r\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.reg")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}

func readValue(t *testing.T, s *Store, root types.Root, path, name string) types.Value {
	t.Helper()
	k, err := s.OpenKey(root, path, store.Read)
	require.NoError(t, err)
	defer k.Close()
	v, err := k.Value(name)
	require.NoError(t, err)
	return v
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.reg")
	s, err := Open(path, nil)
	require.NoError(t, err)

	_, err = s.OpenKey(types.RootUser, "Software", store.Read)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Nothing dirty, so no file is created.
	require.NoError(t, s.Flush(types.RootUser))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.ErrorIs(t, err, types.ErrArgumentNull)
}

func TestOpen_LoadsOps(t *testing.T) {
	s, err := Open(writeSample(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "Widget", readValue(t, s, types.RootUser, `Software\Acme`, "Name").Text)
	assert.Equal(t, uint64(42), readValue(t, s, types.RootUser, `Software\Acme`, "Count").Integer)

	_, err = s.OpenKey(types.RootUser, `Software\Acme\Old`, store.Read)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.False(t, s.Dirty(types.RootUser))
	assert.False(t, s.Dirty(types.RootMachine))
}

func TestOpen_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.reg")
	require.NoError(t, os.WriteFile(path, []byte("not a reg file\r\n"), 0o644))

	_, err := Open(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrFormat)
}

func TestFlush_RoundTrip(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, &Options{SyncMode: SyncNone})
	require.NoError(t, err)

	k, err := s.CreateKey(types.RootUser, `Software\Acme\Sub`)
	require.NoError(t, err)
	require.NoError(t, k.SetValue("List", types.MultiStringValue([]string{"a", "b"})))
	require.NoError(t, k.Close())

	assert.True(t, s.Dirty(types.RootUser))
	require.NoError(t, s.Flush(types.RootUser))
	assert.False(t, s.Dirty(types.RootUser))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, regtext.UTF16LEBOM, data[:2], "default output is UTF-16LE with BOM")

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, readValue(t, reopened, types.RootUser, `Software\Acme\Sub`, "List").Strings)
	assert.Equal(t, "Widget", readValue(t, reopened, types.RootUser, `Software\Acme`, "Name").Text)

	// Keys without values survive as empty sections.
	k, err = reopened.OpenKey(types.RootMachine, `SOFTWARE\Acme`, store.Read)
	require.NoError(t, err)
	require.NoError(t, k.Close())
}

func TestFlush_CleanRootIsNoop(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, nil)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Flush(types.RootUser))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFlush_InvalidRoot(t *testing.T) {
	s, err := Open(writeSample(t), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Flush(types.Root(99)), types.ErrNotFound)
}

func TestFlush_Backup(t *testing.T) {
	path := writeSample(t)
	s, err := Open(path, &Options{CreateBackup: true, OutputEncoding: regtext.EncodingUTF8, NoBOM: true})
	require.NoError(t, err)

	k, err := s.CreateKey(types.RootUser, `Software\Acme`)
	require.NoError(t, err)
	require.NoError(t, k.SetValue("Name", types.StringValue("Gadget")))
	require.NoError(t, k.Close())
	require.NoError(t, s.Flush(types.RootUser))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, sample, string(backup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name"="Gadget"`)
}

func TestExport(t *testing.T) {
	s, err := Open(writeSample(t), nil)
	require.NoError(t, err)

	out, err := s.Export(regtext.EmitOptions{}, types.RootUser)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, `[HKEY_CURRENT_USER\Software\Acme]`)
	assert.Contains(t, text, `"Count"=dword:0000002a`)
	assert.NotContains(t, text, "HKEY_LOCAL_MACHINE")
}

func TestFlush_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regsettings", "nested", "settings.reg")
	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	k, err := s.CreateKey(types.RootUser, `Software\Acme`)
	require.NoError(t, err)
	require.NoError(t, k.SetValue("Theme", types.StringValue("dark")))
	require.NoError(t, k.Close())
	require.NoError(t, s.Flush(types.RootUser))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", readValue(t, reopened, types.RootUser, `Software\Acme`, "Theme").Text)
}

func TestFlush_MultiStringWithEmptyElements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.reg")
	s, err := Open(path, nil)
	require.NoError(t, err)

	want := map[string][]string{
		"Middle":   {"a", "", "b"},
		"Trailing": {"a", ""},
		"OnlyNull": {""},
		"None":     {},
	}
	k, err := s.CreateKey(types.RootUser, `Software\Acme`)
	require.NoError(t, err)
	for name, ss := range want {
		require.NoError(t, k.SetValue(name, types.MultiStringValue(ss)))
	}
	require.NoError(t, k.Close())
	require.NoError(t, s.Sync())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	for name, ss := range want {
		assert.Equal(t, ss, readValue(t, reopened, types.RootUser, `Software\Acme`, name).Strings, name)
	}
}
