package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regsettings/pkg/types"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		root types.Root
		rel  string
	}{
		{"current user", `HKEY_CURRENT_USER\Software\Acme`, types.RootUser, `Software\Acme`},
		{"users overrides user", `HKEY_USERS\.DEFAULT\Software`, types.RootUsers, `.DEFAULT\Software`},
		{"classes root", `HKEY_CLASSES_ROOT\.txt`, types.RootClassesRoot, `.txt`},
		{"current config", `HKEY_CURRENT_CONFIG\System`, types.RootCurrentConfig, `System`},
		{"local machine", `HKEY_LOCAL_MACHINE\SOFTWARE\Acme`, types.RootMachine, `SOFTWARE\Acme`},
		{"unknown defaults to machine", `HKLM\SOFTWARE`, types.RootMachine, `SOFTWARE`},
		{"forward slash", `HKEY_CURRENT_USER/Software/Acme`, types.RootUser, `Software/Acme`},
		{"first separator only", `HKEY_CURRENT_USER\a/b\c`, types.RootUser, `a/b\c`},
		{"case sensitive", `hkey_current_user\Software`, types.RootMachine, `Software`},
		{"keyword anywhere in segment", `MYUSERSTORE\x`, types.RootUsers, `x`},
		{"config after user", `USER_CONFIG\x`, types.RootCurrentConfig, `x`},
		{"no whitespace trimming", ` HKEY_CURRENT_USER\ x `, types.RootUser, ` x `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, rel, err := Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.rel, rel)
		})
	}
}

func TestResolve_UserWithoutOtherKeywords(t *testing.T) {
	for _, head := range []string{"USER", "HKEY_CURRENT_USER", "xUSERx", "USER_SETTINGS"} {
		root, _, err := Resolve(head + `\x`)
		require.NoError(t, err)
		assert.Equal(t, types.RootUser, root, head)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, in := range []string{"", "HKEY_CURRENT_USER", `HKEY_CURRENT_USER\`, "HKCU/"} {
		_, _, err := Resolve(in)
		assert.ErrorIs(t, err, types.ErrInvalidPath, in)
	}
}
