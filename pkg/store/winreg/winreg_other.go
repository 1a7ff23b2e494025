//go:build !windows

package winreg

import (
	"github.com/joshuapare/regsettings/pkg/store"
)

// Open reports types.ErrUnsupported outside Windows.
func Open() (store.Store, error) {
	return nil, errUnsupported()
}
