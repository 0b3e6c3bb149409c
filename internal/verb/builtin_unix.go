//go:build unix

package verb

import (
	"verbtree/pkg/types"
)

// platformBuiltins are the verbs relying on unix commands or /proc style
// filesystem information.
func platformBuiltins() []*Builder {
	return []*Builder{
		external("chmod {args}", "chmod {args} {file}", StayInApp).
			WithStype(types.File),
		external("chmod {args}", "chmod -R {args} {file}", StayInApp).
			WithStype(types.Directory),
		internal(Filesystems).WithShortcut("fs"),
		internal(TogglePerm).WithShortcut("perm"),
	}
}
