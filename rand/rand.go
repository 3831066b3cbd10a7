package rand

import (
	"github.com/thanhpk/randstr"
)

// String returns n random lowercase hex characters, e.g. for
// naming a launch in logs.
func String(n int) string {
	return randstr.Hex(n)
}
