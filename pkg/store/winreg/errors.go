package winreg

import (
	"runtime"

	"github.com/joshuapare/regsettings/pkg/types"
)

func errUnsupported() error {
	return &types.Error{
		Kind: types.ErrKindUnsupported,
		Msg:  "native registry is not available on " + runtime.GOOS,
	}
}
