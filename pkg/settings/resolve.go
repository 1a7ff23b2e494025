package settings

import (
	"strings"

	"github.com/joshuapare/regsettings/pkg/types"
)

// Root keywords, checked in this order against the first path segment.
// Each match reassigns the root, so "HKEY_USERS" ends up as RootUsers even
// though it also contains "USER".
var rootKeywords = []struct {
	keyword string
	root    types.Root
}{
	{"USER", types.RootUser},
	{"ROOT", types.RootClassesRoot},
	{"USERS", types.RootUsers},
	{"CONFIG", types.RootCurrentConfig},
}

// Resolve splits fullPath at its first separator (`\` or `/`) into a root
// selector and the path relative to it. Segments without a keyword resolve
// to RootMachine. Matching is case-sensitive and the input is not
// normalized.
func Resolve(fullPath string) (types.Root, string, error) {
	i := strings.IndexAny(fullPath, `\/`)
	if i < 0 {
		return types.RootMachine, "", &types.Error{Kind: types.ErrKindPath, Msg: "no separator in " + quote(fullPath)}
	}
	head, rel := fullPath[:i], fullPath[i+1:]
	if rel == "" {
		return types.RootMachine, "", &types.Error{Kind: types.ErrKindPath, Msg: "no relative path in " + quote(fullPath)}
	}

	root := types.RootMachine
	for _, kw := range rootKeywords {
		if strings.Contains(head, kw.keyword) {
			root = kw.root
		}
	}
	return root, rel, nil
}

func quote(s string) string { return `"` + s + `"` }
